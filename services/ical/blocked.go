package ical

import (
	"sylt/models"
	"sylt/utils"
)

// BlockedDates derives the blocked calendar days from parsed events: every
// day from DTSTART (inclusive) up to DTEND (exclusive) is blocked.
// Overlapping events produce duplicate entries; de-duplication is the
// caller's responsibility.
func BlockedDates(events []models.CalendarEvent) []string {
	var dates []string
	for _, ev := range events {
		for d := ev.Start; d.Before(ev.End); d = d.AddDate(0, 0, 1) {
			dates = append(dates, utils.FormatDate(d))
		}
	}
	return dates
}
