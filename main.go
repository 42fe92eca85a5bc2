// File: fundilink/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundilink/config"
	"fundilink/cron"
	"fundilink/database"
	bookingRepoPkg "fundilink/database/repository/booking"
	listingRepoPkg "fundilink/database/repository/listing"
	providerRepoPkg "fundilink/database/repository/provider"
	"fundilink/handlers"
	"fundilink/middleware"
	"fundilink/routes"
	"fundilink/services/booking"
	"fundilink/services/notification"
	"fundilink/services/tasks"
	"fundilink/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	listRepo := listingRepoPkg.NewMongoListingRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	if err := provRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure provider indexes: %v", err)
	}
	if err := listRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure listing indexes: %v", err)
	}

	// services.
	matchingService := &booking.DefaultMatchingService{
		ProviderRepo: provRepo,
		ListingRepo:  listRepo,
		Config:       booking.MatchingConfigFromApp(config.AppConfig),
	}

	synthesizer := &booking.ServiceSynthesizer{ListingRepo: listRepo}
	resolver := &booking.AssignmentResolver{
		ProviderRepo: provRepo,
		ListingRepo:  listRepo,
		Synthesizer:  synthesizer,
	}

	notifyEnqueuer := tasks.NewEnqueuer(logger)
	defer notifyEnqueuer.Close()

	assigner := &booking.BookingAssigner{
		BookingRepo: bookRepo,
		ListingRepo: listRepo,
		Notifier:    notifyEnqueuer,
		Logger:      logger,
	}

	bookingService := &booking.DefaultBookingService{
		Matcher:     matchingService,
		Resolver:    resolver,
		Assigner:    assigner,
		BookingRepo: bookRepo,
		Logger:      logger,
	}

	notificationService, err := notification.NewDefaultNotificationService(provRepo, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	cron.InitNotifyWorker(notificationService)

	bookingHandler := handlers.NewBookingHandler(matchingService, bookingService, utils.GetCacheClient(), logger)
	providerHandler := handlers.NewProviderHandler(provRepo)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Booking:  bookingHandler,
		Provider: providerHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

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
