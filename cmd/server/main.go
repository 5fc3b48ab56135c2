package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mallow/storefront/config"
	"github.com/mallow/storefront/internal/app/controller"
	"github.com/mallow/storefront/internal/app/repository"
	"github.com/mallow/storefront/internal/app/service"
	"github.com/mallow/storefront/internal/db"
	"github.com/mallow/storefront/internal/middleware"
	"github.com/mallow/storefront/internal/router"
	"github.com/mallow/storefront/internal/scheduler"
	"github.com/mallow/storefront/pkg/logger"
	"github.com/mallow/storefront/pkg/payment/stripepay"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logger.Initialize(logger.Config{
		Level:       cfg.LogLevel(),
		Format:      cfg.Log.Format,
		EnableColor: true,
	})

	logger.Info("Starting Mallow Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   cfg.LogLevel(),
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Payment provider
	stripeClient, err := stripepay.NewClient(stripepay.Config{
		APIKey:        cfg.Stripe.APIKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		Currency:      cfg.Stripe.Currency,
		BaseURL:       cfg.Stripe.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize Stripe client", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	txRepo := repository.NewPaymentTransactionRepository(db.GetDB())
	contactRepo := repository.NewContactRepository(db.GetDB())
	subscriberRepo := repository.NewSubscriberRepository(db.GetDB())

	// Initialize services
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(cartService, txRepo, stripeClient, cfg.Stripe.Currency)
	contactService := service.NewContactService(contactRepo, subscriberRepo)

	// Initialize controllers
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	contactController := controller.NewContactController(contactService)

	formLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, 30*time.Minute)

	// Setup router
	r := router.NewRouter(
		productController,
		cartController,
		checkoutController,
		contactController,
		formLimiter,
		cfg,
	)

	// Abandoned cart cleanup
	janitor := scheduler.NewCartJanitor(cartService, cfg.Scheduler.CartJanitorSpec, cfg.Scheduler.CartRetention)
	if err := janitor.Start(); err != nil {
		logger.Fatal("Failed to start cart janitor", err)
	}
	defer janitor.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shut down", err)
	}
	logger.Info("Server stopped successfully")
}
