package availability

import (
	"context"
	"errors"

	"sylt/models"
)

var (
	// ErrRoomNotFound is returned when the requested room does not exist.
	ErrRoomNotFound = errors.New("availability: room not found")
	// ErrInvalidRange is returned when checkOut is not strictly after checkIn
	// or a date fails to parse.
	ErrInvalidRange = errors.New("availability: check-out must be after check-in")
)

// AvailabilityService answers calendar and range queries for rooms.
type AvailabilityService interface {
	// GetCalendar returns the day-by-day window [start, end] inclusive.
	GetCalendar(ctx context.Context, roomID, start, end string) (*models.AvailabilityCalendar, error)
	// CheckRange reports whether the half-open stay [checkIn, checkOut) is
	// bookable, with total price and night count when it is.
	CheckRange(ctx context.Context, roomID, checkIn, checkOut string) (*models.AvailabilityResult, error)
	// ReachableCheckIns lists the check-in dates inside [start, end] from
	// which a stay of minStay nights fits entirely on available days.
	ReachableCheckIns(ctx context.Context, roomID, start, end string, minStay int) ([]string, error)
}
