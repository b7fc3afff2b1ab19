package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.mongodb.org/mongo-driver/mongo"

	blockedRepo "sylt/database/repository/blocked"
	roomRepo "sylt/database/repository/room"
	"sylt/models"
	"sylt/services/ical"
	"sylt/utils"
)

// ICalHandler exports a room's blocked dates as a calendar feed and triggers
// on-demand feed syncs.
type ICalHandler struct {
	Rooms   roomRepo.RoomRepository
	Blocked blockedRepo.BlockedDateRepository
	Syncer  *ical.Syncer
	Logger  *zap.Logger
}

// NewICalHandler constructs an ICalHandler.
func NewICalHandler(rooms roomRepo.RoomRepository, blocked blockedRepo.BlockedDateRepository, syncer *ical.Syncer, logger *zap.Logger) *ICalHandler {
	return &ICalHandler{Rooms: rooms, Blocked: blocked, Syncer: syncer, Logger: logger}
}

// ExportFeed handles GET /api/ical/:roomId (conventionally requested as
// <roomId>.ics). Each blocked day becomes a one-day all-day event so OTA
// partners see the same day-granular blocks we ingest from them.
func (h *ICalHandler) ExportFeed(c *gin.Context) {
	roomID := strings.TrimSuffix(c.Param("roomId"), ".ics")

	room, err := h.Rooms.GetByID(c.Request.Context(), roomID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		h.Logger.Error("feed export failed", zap.String("roomId", roomID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to export calendar", "")
		return
	}

	rows, err := h.Blocked.GetByRoom(c.Request.Context(), roomID)
	if err != nil {
		h.Logger.Error("feed export failed", zap.String("roomId", roomID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to export calendar", "")
		return
	}

	events := make([]models.CalendarEvent, 0, len(rows))
	for _, row := range rows {
		day, err := utils.ParseDate(row.Date)
		if err != nil {
			continue
		}
		uid := row.UID
		if uid == "" {
			uid = uuid.New().String()
		}
		events = append(events, models.CalendarEvent{
			UID:     uid,
			Start:   day,
			End:     day.AddDate(0, 0, 1),
			Summary: "Blocked",
		})
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ical.Generate(room.Name, events)))
}

// SyncRoom handles POST /api/ical/:roomId/sync for an on-demand refresh.
func (h *ICalHandler) SyncRoom(c *gin.Context) {
	roomID := c.Param("roomId")

	if err := h.Syncer.SyncRoom(c.Request.Context(), roomID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		h.Logger.Error("on-demand sync failed", zap.String("roomId", roomID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to sync calendars", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "synced", "roomId": roomID})
}
