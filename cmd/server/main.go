package main // Entry point package

import (
	"context" // Context for background janitors
	"log"     // Logging library
	"time"    // Durations for periodic jobs

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/horizonvoyages/travel-backend/internal/cart"       // Session cart manager
	"github.com/horizonvoyages/travel-backend/internal/config"     // Internal config loader
	"github.com/horizonvoyages/travel-backend/internal/database"   // MySQL connection helper
	"github.com/horizonvoyages/travel-backend/internal/handler"    // HTTP handlers
	"github.com/horizonvoyages/travel-backend/internal/middleware" // Cache and rate-limit middleware
	"github.com/horizonvoyages/travel-backend/internal/queue"      // Lead event consumer
	"github.com/horizonvoyages/travel-backend/internal/repository" // Data access layer
	"github.com/horizonvoyages/travel-backend/internal/router"     // Internal router setup
	queue_publisher "github.com/horizonvoyages/travel-backend/internal/service" // Lead event publisher
	"github.com/horizonvoyages/travel-backend/internal/wizard"     // Trip wizard engine
)

func main() {
	// Load .env when present; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// Open MySQL and fail fast when the database is unreachable.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache, the rate limiter and cart
	// persistence.  A nil client degrades all three gracefully.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache, rate limiting and cart persistence disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	destRepo := repository.NewDestinationRepo(db)
	actRepo := repository.NewActivityRepo(db)
	invRepo := repository.NewInvoiceRepo(db)
	tripRepo := repository.NewTripRequestRepo(db)

	// Cart manager: persisted to Redis when available, memory-only otherwise.
	var cartStorage cart.Storage
	if rdb != nil {
		cartStorage = cart.NewRedisStorage(rdb, "cart")
	}
	carts := cart.NewManager(cartStorage)

	// Wizard sessions live in process memory; a janitor purges abandoned ones.
	sessions := wizard.NewSessionManager()
	idle := time.Duration(cfg.WizardIdleMin) * time.Minute
	go func() {
		for range time.Tick(idle / 4) {
			if n := sessions.PurgeIdle(idle); n > 0 {
				log.Printf("wizard: purged %d idle sessions", n)
			}
		}
	}()

	// Submission reconciler: creates the trip request, attaches cart
	// activities and announces the lead on the broker.
	submitter := wizard.NewSubmitter(tripRepo, tripRepo, queue_publisher.PublishLeadCreated)

	// Expired refresh tokens are swept once a day.
	go func() {
		for range time.Tick(24 * time.Hour) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := tokenRepo.PurgeExpired(ctx); err != nil {
				log.Printf("token purge failed: %v", err)
			} else if n > 0 {
				log.Printf("purged %d expired refresh tokens", n)
			}
			cancel()
		}
	}()

	// Background consumer writes captured leads to logs/leads.log.
	go func() {
		if err := queue.StartLeadConsumer(); err != nil {
			log.Printf("lead consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance

	// Rate limiting applies to everything; the response cache only helps
	// the public catalogue reads and is keyed per route+query.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := &handler.PublicHandler{DestinationRepo: destRepo, ActivityRepo: actRepo}
	invoiceHandler := handler.NewInvoiceHandler(invRepo)
	wizardHandler := handler.NewWizardHandler(sessions, carts, submitter, destRepo)
	cartHandler := handler.NewCartHandler(carts, actRepo)
	adminHandler := handler.NewAdminHandler(destRepo, actRepo, invRepo, tripRepo)

	// Routes
	router.RegisterRoutes(e) // health check
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, invoiceHandler)
	router.RegisterWizard(e, wizardHandler, cartHandler)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
