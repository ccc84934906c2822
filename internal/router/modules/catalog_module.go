package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jortega/storefront/internal/application"
	"github.com/jortega/storefront/internal/container"
	handlers "github.com/jortega/storefront/internal/interface/http"
	"github.com/jortega/storefront/internal/interface/middleware"
)

// CatalogModule wires product routes. Reads are public; writes and
// image upload require a session.
type CatalogModule struct {
	Products *handlers.ProductHandler
	Sessions *application.SessionIssuer
}

func NewCatalogModule(products *handlers.ProductHandler, sessions *application.SessionIssuer) *CatalogModule {
	return &CatalogModule{Products: products, Sessions: sessions}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	readLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/products", readLimiter, m.Products.List)
	rg.GET("/products/search", readLimiter, m.Products.Search)
	rg.GET("/products/:id", readLimiter, m.Products.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Sessions))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/products", m.Products.Create)
		auth.PUT("/products/:id", m.Products.Update)
		auth.DELETE("/products/:id", m.Products.Delete)
		auth.POST("/products/:id/image", m.Products.UploadImage)
	}
}
