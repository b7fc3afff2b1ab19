package ical

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	blockedRepo "sylt/database/repository/blocked"
	roomRepo "sylt/database/repository/room"
	"sylt/models"
)

// Syncer pulls each room's configured feeds and replaces the stored blocked
// dates for that room and source. Individual feed failures are logged and
// skipped; one broken OTA feed must never block the others.
type Syncer struct {
	Rooms   roomRepo.RoomRepository
	Blocked blockedRepo.BlockedDateRepository
	Client  *http.Client
	Logger  *zap.Logger
}

// NewSyncer constructs a Syncer with a 15 second fetch timeout.
func NewSyncer(rooms roomRepo.RoomRepository, blocked blockedRepo.BlockedDateRepository, logger *zap.Logger) *Syncer {
	return &Syncer{
		Rooms:   rooms,
		Blocked: blocked,
		Client:  &http.Client{Timeout: 15 * time.Second},
		Logger:  logger,
	}
}

// SyncRoom refreshes the blocked dates of a single room from all of its feeds.
func (s *Syncer) SyncRoom(ctx context.Context, roomID string) error {
	room, err := s.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return fmt.Errorf("calendar sync: room %s: %w", roomID, err)
	}

	for _, feed := range room.Feeds {
		if err := s.syncFeed(ctx, room, feed); err != nil {
			s.Logger.Warn("calendar feed sync failed",
				zap.String("roomId", room.ID),
				zap.String("url", feed.URL),
				zap.Error(err))
		}
	}
	return nil
}

// SyncAll refreshes every room.
func (s *Syncer) SyncAll(ctx context.Context) error {
	rooms, err := s.Rooms.List(ctx)
	if err != nil {
		return fmt.Errorf("calendar sync: list rooms: %w", err)
	}
	for _, room := range rooms {
		if err := s.SyncRoom(ctx, room.ID); err != nil {
			s.Logger.Warn("room sync failed", zap.String("roomId", room.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *Syncer) syncFeed(ctx context.Context, room *models.Room, feed models.CalendarFeed) error {
	body, err := s.fetch(ctx, feed.URL)
	if err != nil {
		return err
	}

	events := Parse(body)
	source := DetectBookingSource(body)

	blocked := make([]models.BlockedDate, 0, len(events))
	for _, ev := range events {
		for d := ev.Start; d.Before(ev.End); d = d.AddDate(0, 0, 1) {
			blocked = append(blocked, models.BlockedDate{
				RoomID: room.ID,
				Date:   d.Format("2006-01-02"),
				UID:    ev.UID,
				Source: source,
			})
		}
	}

	if err := s.Blocked.ReplaceForSource(ctx, room.ID, source, blocked); err != nil {
		return fmt.Errorf("replace blocked dates: %w", err)
	}

	s.Logger.Info("calendar feed synced",
		zap.String("roomId", room.ID),
		zap.String("source", string(source)),
		zap.Int("events", len(events)),
		zap.Int("blockedDays", len(blocked)))
	return nil
}

func (s *Syncer) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("feed fetch returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
