package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jortega/storefront/internal/application"
	"github.com/jortega/storefront/pkg/response"
)

// Context keys set by the authorization gate.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserNameKey  = "userName"
)

// Auth is the authorization gate for API routes: it resolves the
// access_token cookie to an identity or aborts with 401. It reads
// session state but never mutates it.
func Auth(sessions *application.SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolve(c, sessions)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		setIdentity(c, id)
		c.Next()
	}
}

// AuthOrRedirect is the gate for page-facing routes: denial routes the
// caller to the login page instead of an error payload.
func AuthOrRedirect(sessions *application.SessionIssuer, loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolve(c, sessions)
		if !ok {
			c.Abort()
			c.Redirect(http.StatusSeeOther, loginURL)
			return
		}
		setIdentity(c, id)
		c.Next()
	}
}

func resolve(c *gin.Context, sessions *application.SessionIssuer) (*application.Identity, bool) {
	token, err := c.Cookie("access_token")
	if err != nil || token == "" {
		return nil, false
	}
	id, err := sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		return nil, false
	}
	return id, true
}

func setIdentity(c *gin.Context, id *application.Identity) {
	c.Set(CtxUserIDKey, id.UserID)
	c.Set(CtxUserEmailKey, id.Email)
	c.Set(CtxUserNameKey, id.Name)
}
