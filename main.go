// File: rentnest/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentnest/config"
	"rentnest/cron"
	"rentnest/database"
	bookingRepoPkg "rentnest/database/repository/booking"
	enquiryRepoPkg "rentnest/database/repository/enquiry"
	propertyRepoPkg "rentnest/database/repository/property"
	userRepoPkg "rentnest/database/repository/user"
	"rentnest/handlers"
	"rentnest/middleware"
	"rentnest/routes"
	"rentnest/services/booking"
	"rentnest/services/enquiry"
	"rentnest/services/notification"
	"rentnest/services/property"
	"rentnest/services/storage"
	"rentnest/services/tasks"
	"rentnest/services/user"
	"rentnest/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cloudinaryStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	propertyRepo := propertyRepoPkg.NewMongoPropertyRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	enquiryRepo := enquiryRepoPkg.NewMongoEnquiryRepo()

	// services.
	tokens := user.NewRedisTokenProvider(utils.GetAuthCacheClient(), 0)
	scheduler := tasks.NewAsynqScheduler()
	notificationService := notification.NewFCMNotificationService(utils.FCMClient, logger)

	userService := &user.DefaultUserService{
		Repo:         userRepo,
		PropertyRepo: propertyRepo,
		Tokens:       tokens,
		Logger:       logger,
	}

	propertyService := &property.DefaultPropertyService{
		Repo:    propertyRepo,
		Cache:   utils.GetCacheClient(),
		Storage: cloudinaryStorage,
		Logger:  logger,
	}

	bookingService := &booking.DefaultBookingService{
		Processor:    booking.NewStripeProcessor(logger),
		Sessions:     booking.NewRedisSessionStore(utils.GetSessionCacheClient()),
		BookingRepo:  bookingRepo,
		PropertyRepo: propertyRepo,
		UserRepo:     userRepo,
		Notifier:     notificationService,
		Scheduler:    scheduler,
		Logger:       logger,
	}

	enquiryService := &enquiry.DefaultEnquiryService{
		Repo:         enquiryRepo,
		PropertyRepo: propertyRepo,
		UserRepo:     userRepo,
		Scheduler:    scheduler,
		Logger:       logger,
	}

	// Background worker for reminders and push notifications.
	cron.InitTaskWorker(notificationService, userRepo)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Tokens:   tokens,
		User:     handlers.NewUserHandler(userService),
		Property: handlers.NewPropertyHandler(propertyService),
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		Enquiry:  handlers.NewEnquiryHandler(enquiryService),
	}

	routes.RegisterRoutes(router, handlerBundle)

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
