package models

// CalendarFeed is one external iCal subscription attached to a room.
type CalendarFeed struct {
	URL    string        `bson:"url" json:"url"`
	Source BookingSource `bson:"source" json:"source"` // classified from feed content, not the URL
}

// Room represents a single bookable unit.
type Room struct {
	ID        string         `bson:"id" json:"id"`
	Name      string         `bson:"name" json:"name"`
	BasePrice float64        `bson:"basePrice" json:"basePrice"` // nightly base rate before multipliers
	Currency  string         `bson:"currency" json:"currency"`
	MaxGuests int            `bson:"maxGuests" json:"maxGuests"`
	Feeds     []CalendarFeed `bson:"feeds,omitempty" json:"feeds,omitempty"`
}
