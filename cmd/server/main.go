package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/markethub/backend/internal/application/catalog"
	identityapp "github.com/markethub/backend/internal/application/identity"
	"github.com/markethub/backend/internal/application/importer"
	notifyapp "github.com/markethub/backend/internal/application/notification"
	orderapp "github.com/markethub/backend/internal/application/order"
	partnerapp "github.com/markethub/backend/internal/application/partner"
	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/config"
	"github.com/markethub/backend/internal/infrastructure/event"
	"github.com/markethub/backend/internal/infrastructure/feed"
	"github.com/markethub/backend/internal/infrastructure/lock"
	"github.com/markethub/backend/internal/infrastructure/logger"
	"github.com/markethub/backend/internal/infrastructure/notification"
	"github.com/markethub/backend/internal/infrastructure/persistence"
	"github.com/markethub/backend/internal/infrastructure/worker"
	"github.com/markethub/backend/internal/interfaces/http/handler"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
	"github.com/markethub/backend/internal/interfaces/http/router"
)

//	@title			MarketHub API
//	@version		1.0
//	@description	B2B ordering backend: partner price-list feeds, catalog, basket and orders

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting MarketHub",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	tokenRepo := persistence.NewGormConfirmTokenRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	infoRepo := persistence.NewGormProductInfoRepository(db.DB)
	importStore := persistence.NewGormImportRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Outbound email and event-driven notifications
	sender := notification.NewSender(cfg, log)
	registrationHandler := notifyapp.NewRegistrationHandler(tokenRepo, sender, log)
	orderPlacedHandler := notifyapp.NewOrderPlacedHandler(orderRepo, userRepo, sender, log)
	eventBus.Subscribe(registrationHandler)
	eventBus.Subscribe(orderPlacedHandler)
	log.Info("Event handlers registered",
		zap.Strings("registration_events", registrationHandler.EventTypes()),
		zap.Strings("order_placed_events", orderPlacedHandler.EventTypes()),
	)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, tokenRepo, jwtService, eventBus, log)
	catalogService := catalogapp.NewCatalogService(shopRepo, categoryRepo, infoRepo)
	basketService := orderapp.NewBasketService(orderRepo, infoRepo, log)
	orderService := orderapp.NewOrderService(orderRepo, contactRepo, eventBus, log)
	contactService := orderapp.NewContactService(contactRepo, log)
	partnerService := partnerapp.NewPartnerService(shopRepo, orderRepo, eventBus, log)

	// Feed import pipeline
	importLocker := lock.NewLocker(cfg, log)
	fetcher := feed.NewFetcher(cfg.Import.FetchTimeout, cfg.Import.MaxFeedBytes)
	importService := importer.NewImportService(shopRepo, importStore, importLocker, fetcher, eventBus, log)

	importPool := worker.NewPool(cfg.Import.Workers, cfg.Import.QueueSize, log)
	if err := importPool.Start(context.Background()); err != nil {
		log.Fatal("Failed to start import pool", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := importPool.Stop(stopCtx); err != nil {
			log.Error("Error stopping import pool", zap.Error(err))
		}
	}()
	importQueue := importer.NewImportQueue(importService, importPool, sender, log)
	log.Info("Import pool started",
		zap.Int("workers", cfg.Import.Workers),
		zap.Int("queue_size", cfg.Import.QueueSize),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.New(router.Config{
		JWTService: jwtService,
		Logger:     log,
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		MaxFeedBytes:   cfg.Import.MaxFeedBytes,
		AuthRateLimit:  cfg.HTTP.AuthRateLimitRequests,
		AuthRateWindow: cfg.HTTP.AuthRateLimitWindow,
	}, router.Handlers{
		System:  handler.NewSystemHandler(db.DB),
		Auth:    handler.NewAuthHandler(authService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Basket:  handler.NewBasketHandler(basketService),
		Order:   handler.NewOrderHandler(orderService),
		Contact: handler.NewContactHandler(contactService),
		Partner: handler.NewPartnerHandler(partnerService, importQueue),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
