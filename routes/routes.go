package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sylt/handlers"
)

// RegisterAvailabilityRoutes registers calendar and range-check endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, h *handlers.AvailabilityHandler) {
	api := r.Group("/api/availability")
	{
		api.POST("/check", h.CheckAvailability)
		api.GET("/calendar/:roomId", h.GetCalendar)
		api.GET("/checkins/:roomId", h.GetReachableCheckIns)
	}
}

// RegisterBookingRoutes registers booking creation and lookup endpoints.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.POST("", h.CreateBooking)
		api.GET("/:id", h.GetBooking)
	}
}

// RegisterICalRoutes registers the calendar feed export and sync endpoints.
func RegisterICalRoutes(r *gin.Engine, h *handlers.ICalHandler) {
	api := r.Group("/api/ical")
	{
		api.GET("/:roomId", h.ExportFeed)
		api.POST("/:roomId/sync", h.SyncRoom)
	}
}

// RegisterPaymentRoutes registers the Stripe webhook endpoint.
func RegisterPaymentRoutes(r *gin.Engine, h *handlers.PaymentWebhookHandler) {
	r.POST("/api/payments/webhook", h.HandleWebhook)
}

// RegisterHealthRoute registers the health check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *gin.Engine, availability *handlers.AvailabilityHandler, booking *handlers.BookingHandler, ical *handlers.ICalHandler, payments *handlers.PaymentWebhookHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAvailabilityRoutes(r, availability)
	RegisterBookingRoutes(r, booking)
	RegisterICalRoutes(r, ical)
	RegisterPaymentRoutes(r, payments)
	RegisterHealthRoute(r)
}
