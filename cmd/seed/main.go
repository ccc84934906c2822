package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/jortega/storefront/config"
	"github.com/jortega/storefront/internal/application"
	"github.com/jortega/storefront/internal/domain/entity"
	pginfra "github.com/jortega/storefront/internal/infrastructure/postgres"
	"github.com/jortega/storefront/pkg/helpers"
)

// Seeds a demo account and a handful of catalog entries for local
// development. Safe to re-run: the duplicate-email registration error
// is treated as "already seeded".
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	products := pginfra.NewProductRepository(pool)

	authSvc := application.NewAuthService(users, nil, logger)
	u, err := authSvc.Register(ctx, application.RegisterInput{
		FullName: "Demo User",
		Email:    "demo@storefront.local",
		Password: "demopassword",
	})
	switch {
	case err == nil:
		logger.WithField("user_id", u.ID).Info("seeded demo user")
	case errors.Is(err, application.ErrDuplicateEmail):
		logger.Info("demo user already present")
	default:
		log.Fatalf("seed user: %v", err)
	}

	existing, err := products.List(ctx)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}
	if len(existing) > 0 {
		logger.Info("catalog already seeded")
		return
	}

	samples := []entity.Product{
		{Name: "Classic Tee", Description: "Plain cotton t-shirt", Price: 19.90, Stock: 120},
		{Name: "Canvas Tote", Description: "Reusable shopping bag", Price: 12.50, Stock: 80},
		{Name: "Enamel Mug", Description: "350ml camping mug", Price: 9.99, Stock: 200},
	}
	for i := range samples {
		if err := products.Create(ctx, &samples[i]); err != nil {
			log.Fatalf("seed product %q: %v", samples[i].Name, err)
		}
	}
	logger.WithField("count", len(samples)).Info("seeded catalog")
}
