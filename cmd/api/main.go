package main

import (
	"context"
	"log"
	"time"

	"github.com/01moynul/fitshop-api/internal/auth"
	"github.com/01moynul/fitshop-api/internal/config"
	"github.com/01moynul/fitshop-api/internal/database"
	"github.com/01moynul/fitshop-api/internal/email"
	"github.com/01moynul/fitshop-api/internal/handlers"
	"github.com/01moynul/fitshop-api/internal/middleware"
	"github.com/01moynul/fitshop-api/internal/orders"
	"github.com/01moynul/fitshop-api/internal/payments"
	"github.com/01moynul/fitshop-api/internal/printify"
	"github.com/01moynul/fitshop-api/internal/routes"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("CRITICAL ERROR: %v", err)
	}

	// 1. --- Database Connection ---
	db, err := database.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("Failed to migrate database: %v", err)
	}
	cancel()

	// 2. --- Services ---
	authService := auth.NewService(
		database.NewUserStore(db),
		auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		cfg.BcryptCost,
	)
	provider := printify.NewClient(cfg.PrintifyAPIKey, cfg.PrintifyBaseURL, cfg.HTTPTimeout)
	orderService := orders.NewService(
		database.NewOrderStore(db),
		provider,
		email.NewComposer(cfg.Stores),
		email.NewSMTPSender(cfg.Stores, cfg.HTTPTimeout),
		cfg.HTTPTimeout,
	)

	// --- Application Setup ---
	app := &handlers.Handlers{
		Auth:     authService,
		Orders:   orderService,
		Catalog:  provider,
		Payments: payments.NewClient(cfg.Stores, "", cfg.HTTPTimeout),
		Blogs:    database.NewBlogStore(db),
		Articles: database.NewArticleStore(db),
		Metrics:  database.NewMetricStore(db),
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		AllowedOrigin:  cfg.CORSAllowedOrigin,
		TrustedProxies: cfg.TrustedProxies,
		Verifier:       authService,
		Limiter:        middleware.NewRateLimiter(cfg.StatusRateLimit, cfg.StatusBurst),
	})

	// --- Start Server ---
	log.Printf("Starting fitshop API server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
