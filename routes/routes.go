package routes

import (
	"net/http"
	"strings"
	"time"

	"agrirent/config"
	userRepo "agrirent/database/repository/user"
	"agrirent/handlers"
	"agrirent/middleware"
	"agrirent/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers and shared dependencies the routes
// need.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository
	Booking  *handlers.BookingHandler
	Payment  *handlers.PaymentHandler
	Dispute  *handlers.DisputeHandler
}

// RegisterRoutes wires the full HTTP surface.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(corsMiddleware())

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterDisputeRoutes(r, hb)
}

func corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Razorpay-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origins := config.AppConfig.AllowedOrigins
	if origins == "" || origins == "*" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}
	return cors.New(cfg)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm AgriRent"})
	})
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		// Public availability projection.
		api.GET("/equipment/:equipmentId/available-slots", hb.Booking.GetAvailableSlots)

		auth := api.Group("")
		auth.Use(middleware.JWTAuthMiddleware(hb.UserRepo))

		farmer := auth.Group("")
		farmer.Use(middleware.RequireRole(models.RoleFarmer))
		farmer.POST("", hb.Booking.CreateBooking)
		farmer.GET("/farmer", hb.Booking.GetFarmerBookings)
		farmer.GET("/farmer/stats", hb.Booking.GetFarmerStats)
		farmer.PATCH("/:id/start", hb.Booking.StartBooking)
		farmer.PATCH("/:id/complete", hb.Booking.CompleteBooking)
		farmer.PATCH("/:id/cancel", hb.Booking.CancelBooking)

		owner := auth.Group("")
		owner.Use(middleware.RequireApprovedOwner(hb.UserRepo))
		owner.GET("/owner", hb.Booking.GetOwnerBookings)
		owner.GET("/owner/stats", hb.Booking.GetOwnerStats)
		owner.PATCH("/:id/confirm", hb.Booking.ConfirmBooking)
		owner.PATCH("/:id/owner-confirm", hb.Booking.OwnerConfirmCompletion)

		auth.GET("/:id", hb.Booking.GetBookingByID)
	}
}

// RegisterPaymentRoutes registers the payment reconciliation endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		// Webhook is unauthenticated; the gateway signs the raw body.
		api.POST("/webhook", hb.Payment.HandleWebhook)

		auth := api.Group("")
		auth.Use(middleware.JWTAuthMiddleware(hb.UserRepo))

		farmer := auth.Group("")
		farmer.Use(middleware.RequireRole(models.RoleFarmer))
		farmer.POST("/create-order", hb.Payment.CreateOrder)
		farmer.POST("/verify", hb.Payment.VerifyPayment)

		auth.GET("/booking/:id", hb.Payment.GetPaymentByBooking)

		admin := auth.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.GET("", hb.Payment.GetAllPayments)
	}
}

// RegisterDisputeRoutes registers the dispute and refund endpoints.
func RegisterDisputeRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/disputes")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("", hb.Dispute.RaiseDispute)
		api.GET("/my", hb.Dispute.GetMyDisputes)
		api.GET("/:id", hb.Dispute.GetDisputeByID)
		api.POST("/:id/refund-order", hb.Dispute.CreateRefundOrder)
		api.POST("/:id/verify-refund", hb.Dispute.VerifyRefund)

		admin := api.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.GET("/admin/all", hb.Dispute.GetAllDisputes)
		admin.PATCH("/:id/under-review", hb.Dispute.MarkUnderReview)
		admin.PATCH("/:id/admin-action", hb.Dispute.AdminResolveDispute)
	}
}
