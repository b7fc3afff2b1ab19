package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.mongodb.org/mongo-driver/mongo"

	"sylt/models"
	"sylt/services/booking"
)

// BookingHandler exposes booking creation and confirmation lookup.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings. On success the guest is
// expected to be redirected to the returned payment URL.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch err {
		case booking.ErrInvalidStay:
			c.JSON(http.StatusBadRequest, gin.H{"error": "check-out must be after check-in"})
		case booking.ErrInvalidGuest:
			c.JSON(http.StatusBadRequest, gin.H{"error": "guest name and a valid email are required"})
		case booking.ErrTooManyGuests:
			c.JSON(http.StatusBadRequest, gin.H{"error": "party exceeds room capacity"})
		case booking.ErrRoomUnavailable:
			c.JSON(http.StatusConflict, gin.H{"error": "room not available for these dates"})
		default:
			h.Logger.Error("booking creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")

	record, err := h.Service.GetBooking(c.Request.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.Logger.Error("booking lookup failed", zap.String("bookingId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking"})
		return
	}

	c.JSON(http.StatusOK, record)
}
