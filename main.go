// File: sylt/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sylt/config"
	"sylt/cron"
	"sylt/database"
	blockedRepo "sylt/database/repository/blocked"
	bookingRepoPkg "sylt/database/repository/booking"
	roomRepoPkg "sylt/database/repository/room"
	"sylt/handlers"
	"sylt/middleware"
	"sylt/routes"
	"sylt/services/availability"
	"sylt/services/booking"
	"sylt/services/ical"
	"sylt/services/pricing"
	"sylt/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	roomRepo := roomRepoPkg.NewMongoRoomRepo()
	blocked := blockedRepo.NewMongoBlockedRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	pricingEngine := pricing.NewEngine(pricing.DefaultConfig())

	availabilityService := &availability.DefaultAvailabilityService{
		Rooms:       roomRepo,
		Blocked:     blocked,
		Engine:      pricingEngine,
		CacheClient: utils.GetCacheClient(),
		Logger:      logger,
	}

	syncer := ical.NewSyncer(roomRepo, blocked, logger)

	bookingService := &booking.DefaultBookingService{
		Availability: availabilityService,
		Rooms:        roomRepo,
		Repo:         bookingRepo,
		Checkout: &booking.StripeCheckout{
			SuccessURL: config.AppConfig.StripeSuccessURL,
			CancelURL:  config.AppConfig.StripeCancelURL,
		},
		Logger: logger,
	}

	// handlers.
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	icalHandler := handlers.NewICalHandler(roomRepo, blocked, syncer, logger)
	paymentHandler := handlers.NewPaymentWebhookHandler(bookingService, logger)

	routes.RegisterRoutes(router, availabilityHandler, bookingHandler, icalHandler, paymentHandler)

	// Background feed sync worker and health monitor.
	cron.InitCalendarSyncWorker(syncer)
	utils.StartHealthMonitor(utils.GetCacheClient(), utils.GetSyncQueueClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
