package router

import (
	"github.com/jortega/storefront/internal/application"
	"github.com/jortega/storefront/internal/container"
	pginfra "github.com/jortega/storefront/internal/infrastructure/postgres"
	handlers "github.com/jortega/storefront/internal/interface/http"
	"github.com/jortega/storefront/internal/router/modules"
)

// InitModules builds every feature module from the container
// singletons and registers it. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	sessions := container.GetSessions()

	userRepo := pginfra.NewUserRepository(pool)
	productRepo := pginfra.NewProductRepository(pool)
	inventoryRepo := pginfra.NewInventoryRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetRabbitPub(), logger)
	catalogSvc := application.NewCatalogService(productRepo, container.GetES(), cfg.ESProductsIndex, container.GetGCS(), cfg.GCSBucket, logger)
	inventorySvc := application.NewInventoryService(inventoryRepo, logger)

	authHandler := handlers.NewAuthHandler(authSvc, sessions, logger, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(authSvc, logger)
	productHandler := handlers.NewProductHandler(catalogSvc, logger)
	inventoryHandler := handlers.NewInventoryHandler(inventorySvc, logger)
	adminHandler := handlers.NewAdminHandler(userRepo, logger)

	r.Add(modules.NewAuthModule(authHandler, userHandler, sessions))
	r.Add(modules.NewCatalogModule(productHandler, sessions))
	r.Add(modules.NewInventoryModule(inventoryHandler, sessions))
	r.Add(modules.NewAdminModule(adminHandler, sessions))
}
