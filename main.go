// File: agrirent/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agrirent/config"
	"agrirent/database"
	bookingRepoPkg "agrirent/database/repository/booking"
	disputeRepoPkg "agrirent/database/repository/dispute"
	equipmentRepoPkg "agrirent/database/repository/equipment"
	paymentRepoPkg "agrirent/database/repository/payment"
	userRepoPkg "agrirent/database/repository/user"
	"agrirent/handlers"
	"agrirent/middleware"
	"agrirent/routes"
	"agrirent/services/booking"
	"agrirent/services/dispute"
	"agrirent/services/payment"
	"agrirent/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	disputeRepo := disputeRepoPkg.NewMongoDisputeRepo()
	equipmentRepo := equipmentRepoPkg.NewMongoEquipmentRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// Gateway client. Injected everywhere so tests can swap a fake in.
	gateway := payment.NewRazorpayGateway(
		config.AppConfig.RazorpayKeyID,
		config.AppConfig.RazorpayKeySecret,
	)

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:          bookingRepo,
		EquipmentRepo: equipmentRepo,
		UserRepo:      userRepo,
	}

	paymentService := &payment.DefaultPaymentService{
		Payments:      paymentRepo,
		Bookings:      bookingRepo,
		Gateway:       gateway,
		KeyID:         config.AppConfig.RazorpayKeyID,
		KeySecret:     config.AppConfig.RazorpayKeySecret,
		WebhookSecret: config.AppConfig.RazorpayWebhookSecret,
		Logger:        logger,
	}

	disputeService := &dispute.DefaultDisputeService{
		Disputes:  disputeRepo,
		Bookings:  bookingRepo,
		Gateway:   gateway,
		KeyID:     config.AppConfig.RazorpayKeyID,
		KeySecret: config.AppConfig.RazorpayKeySecret,
		Logger:    logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		UserRepo: userRepo,
		Booking:  handlers.NewBookingHandler(bookingService),
		Payment:  handlers.NewPaymentHandler(paymentService),
		Dispute:  handlers.NewDisputeHandler(disputeService),
	}

	// Register routes with the assembled handler bundle.
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
