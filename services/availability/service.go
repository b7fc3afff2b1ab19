package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.mongodb.org/mongo-driver/mongo"

	blockedRepo "sylt/database/repository/blocked"
	roomRepo "sylt/database/repository/room"
	"sylt/models"
	"sylt/services/pricing"
	"sylt/utils"
)

// calendarCacheTTL bounds how stale a cached window may be relative to the
// blocked-date store.
const calendarCacheTTL = 5 * time.Minute

// DefaultAvailabilityService implements AvailabilityService on top of the
// room and blocked-date repositories, with Redis-cached calendar windows.
type DefaultAvailabilityService struct {
	Rooms       roomRepo.RoomRepository
	Blocked     blockedRepo.BlockedDateRepository
	Engine      *pricing.Engine
	CacheClient *redis.Client
	Logger      *zap.Logger
}

func (s *DefaultAvailabilityService) GetCalendar(ctx context.Context, roomID, start, end string) (*models.AvailabilityCalendar, error) {
	startDay, err := utils.ParseDate(start)
	if err != nil {
		return nil, ErrInvalidRange
	}
	endDay, err := utils.ParseDate(end)
	if err != nil {
		return nil, ErrInvalidRange
	}

	cacheKey := fmt.Sprintf("avail:%s:%s:%s", roomID, start, end)
	if s.CacheClient != nil {
		if data, err := s.CacheClient.Get(ctx, cacheKey).Result(); err == nil {
			var cached models.AvailabilityCalendar
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	room, err := s.Rooms.GetByID(ctx, roomID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("availability: load room: %w", err)
	}

	blockedRows, err := s.Blocked.GetByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("availability: load blocked dates: %w", err)
	}
	blocked := make(map[string]bool, len(blockedRows))
	for _, row := range blockedRows {
		blocked[row.Date] = true
	}

	cal := BuildCalendar(roomID, startDay, endDay, room.BasePrice, blocked, s.Engine)

	if s.CacheClient != nil {
		if data, err := json.Marshal(cal); err == nil {
			if err := s.CacheClient.Set(ctx, cacheKey, data, calendarCacheTTL).Err(); err != nil {
				s.Logger.Warn("availability cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
	return &cal, nil
}

func (s *DefaultAvailabilityService) CheckRange(ctx context.Context, roomID, checkIn, checkOut string) (*models.AvailabilityResult, error) {
	in, err := utils.ParseDate(checkIn)
	if err != nil {
		return nil, ErrInvalidRange
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		return nil, ErrInvalidRange
	}
	if !out.After(in) {
		return nil, ErrInvalidRange
	}

	// The stay is half-open, so the window only needs to cover the nights
	// [checkIn, checkOut).
	lastNight := utils.FormatDate(out.AddDate(0, 0, -1))
	cal, err := s.GetCalendar(ctx, roomID, checkIn, lastNight)
	if err != nil {
		return nil, err
	}

	if !IsRangeAvailable(*cal, checkIn, checkOut) {
		return &models.AvailabilityResult{Available: false}, nil
	}

	total := TotalPrice(*cal, checkIn, checkOut)
	nights := utils.NightsBetween(in, out)
	return &models.AvailabilityResult{
		Available:  true,
		TotalPrice: &total,
		Nights:     &nights,
	}, nil
}

func (s *DefaultAvailabilityService) ReachableCheckIns(ctx context.Context, roomID, start, end string, minStay int) ([]string, error) {
	cal, err := s.GetCalendar(ctx, roomID, start, end)
	if err != nil {
		return nil, err
	}
	return ReachableCheckIns(*cal, minStay), nil
}

var _ AvailabilityService = (*DefaultAvailabilityService)(nil)
