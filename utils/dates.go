// File: utils/dates.go
package utils

import "time"

// DateLayout is the wire format for calendar dates throughout the API.
const DateLayout = "2006-01-02"

// FormatDate renders a date as "YYYY-MM-DD" using its own calendar fields,
// without any timezone conversion.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a "YYYY-MM-DD" string into a local midnight date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// NightsBetween returns the number of billable nights between check-in and
// check-out. Fractional day differences round up, and any forward-dated pair
// yields at least one night.
func NightsBetween(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	nights := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		nights++
	}
	if nights < 1 {
		nights = 1
	}
	return nights
}

// DaysBetween returns every calendar day from start to end, inclusive of both
// bounds. A reversed range yields an empty slice rather than an error; callers
// are responsible for pre-validating their bounds.
func DaysBetween(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
