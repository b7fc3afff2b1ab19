package models

import "time"

// BookingSource identifies where a calendar feed originates.
type BookingSource string

const (
	SourceDirect     BookingSource = "direct"
	SourceBookingCom BookingSource = "booking.com"
	SourceAirbnb     BookingSource = "airbnb"
	SourceExpedia    BookingSource = "expedia"
)

// CalendarEvent is a reservation block parsed from a third-party iCal feed.
// End is exclusive; a one-day block has End == Start + 24h.
type CalendarEvent struct {
	UID         string    `json:"uid"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
}

// DayAvailability describes one calendar day for one room. Price is set if
// and only if the day is available.
type DayAvailability struct {
	RoomID    string   `bson:"roomId" json:"roomId"`
	Date      string   `bson:"date" json:"date"` // "YYYY-MM-DD"
	Available bool     `bson:"available" json:"available"`
	Price     *float64 `bson:"price,omitempty" json:"price,omitempty"`
	MinStay   int      `bson:"minStay" json:"minStay"`
}

// AvailabilityCalendar is a contiguous day-by-day window for one room. Dates
// increase strictly by one calendar day with no gaps.
type AvailabilityCalendar struct {
	RoomID string            `json:"roomId"`
	Days   []DayAvailability `json:"days"`
}

// BlockedDate is one blocked calendar day derived from a feed event.
// Overlapping events may produce duplicate rows for the same day; range
// queries use set-membership semantics and are unaffected.
type BlockedDate struct {
	RoomID string        `bson:"roomId" json:"roomId"`
	Date   string        `bson:"date" json:"date"` // "YYYY-MM-DD"
	UID    string        `bson:"uid,omitempty" json:"uid,omitempty"`
	Source BookingSource `bson:"source" json:"source"`
}
