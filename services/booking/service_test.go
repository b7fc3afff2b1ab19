package booking

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"sylt/models"
)

type fakeRooms struct {
	room models.Room
}

func (f *fakeRooms) GetByID(ctx context.Context, id string) (*models.Room, error) {
	if id != f.room.ID {
		return nil, errors.New("not found")
	}
	r := f.room
	return &r, nil
}
func (f *fakeRooms) List(ctx context.Context) ([]models.Room, error) {
	return []models.Room{f.room}, nil
}
func (f *fakeRooms) Upsert(ctx context.Context, room *models.Room) error { return nil }

type fakeBookings struct {
	created  []*models.Booking
	statuses map[string]string
}

func (f *fakeBookings) Create(ctx context.Context, b *models.Booking) error {
	f.created = append(f.created, b)
	return nil
}
func (f *fakeBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	for _, b := range f.created {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, errors.New("not found")
}
func (f *fakeBookings) UpdateStatus(ctx context.Context, id, status string) error {
	if f.statuses == nil {
		f.statuses = make(map[string]string)
	}
	f.statuses[id] = status
	return nil
}

type fakeAvailability struct {
	available bool
	total     float64
	nights    int
}

func (f *fakeAvailability) GetCalendar(ctx context.Context, roomID, start, end string) (*models.AvailabilityCalendar, error) {
	return &models.AvailabilityCalendar{RoomID: roomID}, nil
}
func (f *fakeAvailability) CheckRange(ctx context.Context, roomID, checkIn, checkOut string) (*models.AvailabilityResult, error) {
	if !f.available {
		return &models.AvailabilityResult{Available: false}, nil
	}
	total, nights := f.total, f.nights
	return &models.AvailabilityResult{Available: true, TotalPrice: &total, Nights: &nights}, nil
}
func (f *fakeAvailability) ReachableCheckIns(ctx context.Context, roomID, start, end string, minStay int) ([]string, error) {
	return nil, nil
}

type fakeCheckout struct {
	calls int
	url   string
}

func (f *fakeCheckout) CreateSession(ctx context.Context, b *models.Booking, roomName string) (string, error) {
	f.calls++
	return f.url, nil
}

func newTestService(available bool) (*DefaultBookingService, *fakeBookings, *fakeCheckout) {
	bookings := &fakeBookings{}
	checkout := &fakeCheckout{url: "https://checkout.stripe.test/session"}
	svc := &DefaultBookingService{
		Availability: &fakeAvailability{available: available, total: 715, nights: 5},
		Rooms:        &fakeRooms{room: models.Room{ID: "room-1", Name: "Dune Suite", BasePrice: 100, Currency: "eur", MaxGuests: 4}},
		Repo:         bookings,
		Checkout:     checkout,
		Logger:       zap.NewNop(),
	}
	return svc, bookings, checkout
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		RoomID:     "room-1",
		CheckIn:    "2025-07-07",
		CheckOut:   "2025-07-12",
		Guests:     2,
		GuestName:  "  Erika Mustermann\t",
		GuestEmail: "Erika@Example.COM",
	}
}

func TestCreateBooking(t *testing.T) {
	svc, bookings, checkout := newTestService(true)

	resp, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if resp.PaymentURL != "https://checkout.stripe.test/session" {
		t.Errorf("PaymentURL = %q", resp.PaymentURL)
	}
	if checkout.calls != 1 {
		t.Errorf("checkout sessions created = %d, want 1", checkout.calls)
	}
	if len(bookings.created) != 1 {
		t.Fatalf("bookings persisted = %d, want 1", len(bookings.created))
	}

	b := bookings.created[0]
	if b.GuestName != "Erika Mustermann" {
		t.Errorf("GuestName = %q, sanitization failed", b.GuestName)
	}
	if b.GuestEmail != "erika@example.com" {
		t.Errorf("GuestEmail = %q, normalization failed", b.GuestEmail)
	}
	if b.Status != models.BookingPendingPayment {
		t.Errorf("Status = %q", b.Status)
	}
	if b.TotalPrice != 715 || b.Nights != 5 {
		t.Errorf("TotalPrice/Nights = %v/%d", b.TotalPrice, b.Nights)
	}
}

func TestCreateBookingUnavailableRoom(t *testing.T) {
	svc, bookings, checkout := newTestService(false)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("err = %v, want ErrRoomUnavailable", err)
	}
	if checkout.calls != 0 {
		t.Error("payment session must not be created for an unavailable stay")
	}
	if len(bookings.created) != 0 {
		t.Error("no booking may be persisted for an unavailable stay")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, _ := newTestService(true)

	tests := []struct {
		name    string
		mutate  func(*models.BookingRequest)
		wantErr error
	}{
		{"checkout before checkin", func(r *models.BookingRequest) { r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn }, ErrInvalidStay},
		{"equal dates", func(r *models.BookingRequest) { r.CheckOut = r.CheckIn }, ErrInvalidStay},
		{"unparseable date", func(r *models.BookingRequest) { r.CheckIn = "07/07/2025" }, ErrInvalidStay},
		{"empty name", func(r *models.BookingRequest) { r.GuestName = "  \t " }, ErrInvalidGuest},
		{"bad email", func(r *models.BookingRequest) { r.GuestEmail = "not-an-email" }, ErrInvalidGuest},
		{"too many guests", func(r *models.BookingRequest) { r.Guests = 9 }, ErrTooManyGuests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			if _, err := svc.CreateBooking(context.Background(), req); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolvePayment(t *testing.T) {
	tests := []struct {
		name      string
		succeeded bool
		want      string
	}{
		{"success confirms", true, models.BookingConfirmed},
		{"failure cancels", false, models.BookingCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, bookings, _ := newTestService(true)
			if err := svc.ResolvePayment(context.Background(), "bk-1", tt.succeeded); err != nil {
				t.Fatalf("ResolvePayment: %v", err)
			}
			if got := bookings.statuses["bk-1"]; got != tt.want {
				t.Errorf("status = %q, want %q", got, tt.want)
			}
		})
	}
}
