package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jortega/storefront/internal/application"
	"github.com/jortega/storefront/internal/container"
	handlers "github.com/jortega/storefront/internal/interface/http"
	"github.com/jortega/storefront/internal/interface/middleware"
)

// AdminModule wires user-management routes under /api/admin.
type AdminModule struct {
	Admin    *handlers.AdminHandler
	Sessions *application.SessionIssuer
}

func NewAdminModule(admin *handlers.AdminHandler, sessions *application.SessionIssuer) *AdminModule {
	return &AdminModule{Admin: admin, Sessions: sessions}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/admin")
	auth.Use(middleware.Auth(m.Sessions))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/users", m.Admin.ListUsers)
		auth.PUT("/users/:id", m.Admin.UpdateUser)
		auth.DELETE("/users/:id", m.Admin.DeleteUser)
	}
}
