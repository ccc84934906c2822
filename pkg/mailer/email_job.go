package mailer

// EmailJob is the message published to the email queue by the API
// process and consumed by the email worker.
type EmailJob struct {
	To       string `json:"to"`
	Template string `json:"template"` // currently only "welcome"
	Name     string `json:"name"`
}

// TemplateWelcome is sent once after a successful signup.
const TemplateWelcome = "welcome"
