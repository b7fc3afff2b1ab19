package booking

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sylt/config"
	bookingRepo "sylt/database/repository/booking"
	roomRepo "sylt/database/repository/room"
	"sylt/models"
	"sylt/services/availability"
	"sylt/utils"
)

// DefaultBookingService implements BookingService. Availability is
// re-checked here regardless of what the client saw; the payment session is
// only created once the stay is confirmed bookable.
type DefaultBookingService struct {
	Availability availability.AvailabilityService
	Rooms        roomRepo.RoomRepository
	Repo         bookingRepo.BookingRepository
	Checkout     CheckoutProvider
	Logger       *zap.Logger
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
	guestName := sanitizeText(req.GuestName)
	guestEmail, err := sanitizeEmail(req.GuestEmail)
	if guestName == "" || err != nil {
		return nil, ErrInvalidGuest
	}

	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		return nil, ErrInvalidStay
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		return nil, ErrInvalidStay
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidStay
	}

	room, err := s.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("booking: load room: %w", err)
	}
	if room.MaxGuests > 0 && req.Guests > room.MaxGuests {
		return nil, ErrTooManyGuests
	}

	result, err := s.Availability.CheckRange(ctx, req.RoomID, req.CheckIn, req.CheckOut)
	if err != nil {
		if err == availability.ErrInvalidRange {
			return nil, ErrInvalidStay
		}
		return nil, fmt.Errorf("booking: availability check: %w", err)
	}
	if !result.Available {
		return nil, ErrRoomUnavailable
	}

	currency := room.Currency
	if currency == "" {
		currency = config.AppConfig.Currency
	}

	record := &models.Booking{
		ID:         uuid.New().String(),
		RoomID:     room.ID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Nights:     *result.Nights,
		Guests:     req.Guests,
		GuestName:  guestName,
		GuestEmail: guestEmail,
		TotalPrice: *result.TotalPrice,
		Currency:   currency,
		Status:     models.BookingPendingPayment,
		CreatedAt:  time.Now().UTC(),
	}

	paymentURL, err := s.Checkout.CreateSession(ctx, record, room.Name)
	if err != nil {
		return nil, fmt.Errorf("booking: create payment session: %w", err)
	}
	record.PaymentURL = paymentURL

	if err := s.Repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("booking: persist booking: %w", err)
	}

	s.Logger.Info("booking created",
		zap.String("bookingId", record.ID),
		zap.String("roomId", record.RoomID),
		zap.String("checkIn", record.CheckIn),
		zap.String("checkOut", record.CheckOut),
		zap.Float64("totalPrice", record.TotalPrice))

	return &models.BookingResponse{
		BookingID:  record.ID,
		PaymentURL: paymentURL,
	}, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultBookingService) ResolvePayment(ctx context.Context, bookingID string, succeeded bool) error {
	status := models.BookingCancelled
	if succeeded {
		status = models.BookingConfirmed
	}
	if err := s.Repo.UpdateStatus(ctx, bookingID, status); err != nil {
		return fmt.Errorf("booking: resolve payment for %s: %w", bookingID, err)
	}
	s.Logger.Info("payment resolved",
		zap.String("bookingId", bookingID),
		zap.String("status", status))
	return nil
}

// sanitizeText strips control characters and collapses surrounding
// whitespace from free-text guest input.
func sanitizeText(v string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, v)
	return strings.TrimSpace(clean)
}

// sanitizeEmail normalizes and validates a guest email address.
func sanitizeEmail(v string) (string, error) {
	v = strings.ToLower(sanitizeText(v))
	addr, err := mail.ParseAddress(v)
	if err != nil {
		return "", err
	}
	return addr.Address, nil
}

var _ BookingService = (*DefaultBookingService)(nil)
