package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sylt/models"
	"sylt/services/availability"
)

// AvailabilityHandler exposes the availability engine over HTTP.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
	Logger  *zap.Logger
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(svc availability.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, Logger: logger}
}

// CheckAvailability handles POST /api/availability/check. A structurally
// valid stay that is simply not bookable is a 200 with available=false, not
// an error.
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	var req models.AvailabilityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Service.CheckRange(c.Request.Context(), req.PropertyID, req.CheckIn, req.CheckOut)
	if err != nil {
		switch err {
		case availability.ErrInvalidRange:
			c.JSON(http.StatusBadRequest, gin.H{"error": "check-out must be after check-in"})
		case availability.ErrRoomNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		default:
			h.Logger.Error("availability check failed", zap.String("roomId", req.PropertyID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check availability"})
		}
		return
	}

	c.JSON(http.StatusOK, models.AvailabilityCheckResponse{Success: true, Data: *result})
}

// GetCalendar handles GET /api/availability/calendar/:roomId?start=&end=.
func (h *AvailabilityHandler) GetCalendar(c *gin.Context) {
	roomID := c.Param("roomId")
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end query parameters are required"})
		return
	}

	cal, err := h.Service.GetCalendar(c.Request.Context(), roomID, start, end)
	if err != nil {
		switch err {
		case availability.ErrInvalidRange:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range"})
		case availability.ErrRoomNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		default:
			h.Logger.Error("calendar build failed", zap.String("roomId", roomID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build calendar"})
		}
		return
	}

	c.JSON(http.StatusOK, cal)
}

// GetReachableCheckIns handles GET /api/availability/checkins/:roomId.
func (h *AvailabilityHandler) GetReachableCheckIns(c *gin.Context) {
	roomID := c.Param("roomId")
	start := c.Query("start")
	end := c.Query("end")
	minStay := 1
	if v := c.Query("minStay"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minStay must be a positive integer"})
			return
		}
		minStay = parsed
	}

	checkIns, err := h.Service.ReachableCheckIns(c.Request.Context(), roomID, start, end, minStay)
	if err != nil {
		switch err {
		case availability.ErrInvalidRange:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range"})
		case availability.ErrRoomNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		default:
			h.Logger.Error("check-in scan failed", zap.String("roomId", roomID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute check-in dates"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"roomId": roomID, "minStay": minStay, "checkIns": checkIns})
}
