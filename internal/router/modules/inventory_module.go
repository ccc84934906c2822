package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jortega/storefront/internal/application"
	"github.com/jortega/storefront/internal/container"
	handlers "github.com/jortega/storefront/internal/interface/http"
	"github.com/jortega/storefront/internal/interface/middleware"
)

// InventoryModule wires back-of-house inventory routes; everything
// requires a session.
type InventoryModule struct {
	Inventory *handlers.InventoryHandler
	Sessions  *application.SessionIssuer
}

func NewInventoryModule(inventory *handlers.InventoryHandler, sessions *application.SessionIssuer) *InventoryModule {
	return &InventoryModule{Inventory: inventory, Sessions: sessions}
}

func (m *InventoryModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/inventory")
	auth.Use(middleware.Auth(m.Sessions))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Inventory.List)
		auth.GET("/:id", m.Inventory.Get)
		auth.POST("", m.Inventory.Create)
		auth.PUT("/:id", m.Inventory.Update)
		auth.DELETE("/:id", m.Inventory.Delete)
	}
}
