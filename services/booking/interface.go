package booking

import (
	"context"
	"errors"

	"sylt/models"
)

var (
	// ErrInvalidStay is returned when the requested dates do not form a
	// valid stay (unparseable, or check-out not after check-in).
	ErrInvalidStay = errors.New("booking: check-out must be after check-in")
	// ErrInvalidGuest is returned when the guest name or email is unusable
	// after sanitization.
	ErrInvalidGuest = errors.New("booking: invalid guest details")
	// ErrRoomUnavailable is returned when the room is not available for the
	// requested dates. This is an expected outcome, not a server fault.
	ErrRoomUnavailable = errors.New("booking: room not available for these dates")
	// ErrTooManyGuests is returned when the party exceeds the room capacity.
	ErrTooManyGuests = errors.New("booking: party exceeds room capacity")
)

// BookingService creates bookings and resolves their confirmation state.
type BookingService interface {
	// CreateBooking validates the stay, re-checks availability server-side,
	// creates a payment session and persists a pending booking. The caller
	// redirects the guest to the returned payment URL.
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error)
	// GetBooking returns the booking record, including its payment status.
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	// ResolvePayment records the outcome of the checkout session for a
	// booking: confirmed on success, cancelled otherwise.
	ResolvePayment(ctx context.Context, bookingID string, succeeded bool) error
}
