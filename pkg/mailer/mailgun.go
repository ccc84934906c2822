package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<html>
<body style="font-family: sans-serif;">
  <h2>Welcome, {{.Name}}!</h2>
  <p>Your account is ready. You can sign in and start browsing the store right away.</p>
  <p>If you did not create this account, you can safely ignore this email.</p>
</body>
</html>
`))

// SendJob renders and sends the job's template. Unknown templates are
// an error so misrouted queue messages surface in worker logs.
func (m *Mailgun) SendJob(ctx context.Context, job EmailJob) error {
	switch job.Template {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err := welcomeTmpl.Execute(&buf, struct{ Name string }{Name: job.Name}); err != nil {
			return err
		}
		return m.Send(ctx, job.To, "Welcome to the store", "", buf.String())
	default:
		return fmt.Errorf("unknown email template %q", job.Template)
	}
}

// Send sends an email via Mailgun. html is optional; if provided it is
// used as the HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
