package models

import "time"

// Booking statuses.
const (
	BookingPendingPayment = "pending_payment"
	BookingConfirmed      = "confirmed"
	BookingCancelled      = "cancelled"
)

// Booking represents a guest reservation record.
type Booking struct {
	ID         string    `bson:"id" json:"id"`                 // Unique booking identifier (UUID)
	RoomID     string    `bson:"roomId" json:"roomId"`         // Room that was booked
	CheckIn    string    `bson:"checkIn" json:"checkIn"`       // Check-in date, "YYYY-MM-DD", inclusive
	CheckOut   string    `bson:"checkOut" json:"checkOut"`     // Check-out date, "YYYY-MM-DD", exclusive
	Nights     int       `bson:"nights" json:"nights"`         // Billable nights
	Guests     int       `bson:"guests" json:"guests"`         // Party size
	GuestName  string    `bson:"guestName" json:"guestName"`   // Sanitized guest name
	GuestEmail string    `bson:"guestEmail" json:"guestEmail"` // Sanitized guest email
	TotalPrice float64   `bson:"totalPrice" json:"totalPrice"` // Sum of nightly prices over the stay
	Currency   string    `bson:"currency" json:"currency"`
	Status     string    `bson:"status" json:"status"` // pending_payment, confirmed, cancelled
	PaymentURL string    `bson:"paymentUrl,omitempty" json:"paymentUrl,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// AvailabilityCheckRequest is the body of POST /api/availability/check.
type AvailabilityCheckRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
	CheckIn    string `json:"checkIn" binding:"required"`
	CheckOut   string `json:"checkOut" binding:"required"`
}

// AvailabilityResult is the data payload of a successful availability check.
type AvailabilityResult struct {
	Available  bool     `json:"available"`
	TotalPrice *float64 `json:"totalPrice,omitempty"`
	Nights     *int     `json:"nights,omitempty"`
}

// AvailabilityCheckResponse is the envelope returned by the check endpoint.
type AvailabilityCheckResponse struct {
	Success bool               `json:"success"`
	Data    AvailabilityResult `json:"data"`
}

// BookingRequest is the body of POST /api/bookings.
type BookingRequest struct {
	RoomID     string `json:"roomId" binding:"required"`
	CheckIn    string `json:"checkIn" binding:"required"`
	CheckOut   string `json:"checkOut" binding:"required"`
	Guests     int    `json:"guests" binding:"required"`
	GuestName  string `json:"guestName" binding:"required"`
	GuestEmail string `json:"guestEmail" binding:"required"`
}

// BookingResponse is returned after a booking is created; the caller is
// expected to redirect the guest to PaymentURL.
type BookingResponse struct {
	BookingID  string `json:"bookingId"`
	PaymentURL string `json:"paymentUrl"`
}
