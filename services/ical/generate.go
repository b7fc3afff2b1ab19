package ical

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"sylt/models"
)

// Generate renders events as a VCALENDAR feed for export to OTA partners.
// Start and end are emitted as all-day dates (date part only), matching the
// blocked-date semantics used on ingest.
func Generate(calName string, events []models.CalendarEvent) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	if calName != "" {
		cal.SetXWRCalName(calName)
	}

	now := time.Now()
	for _, ev := range events {
		e := cal.AddEvent(ev.UID)
		e.SetDtStampTime(now)
		e.SetAllDayStartAt(ev.Start)
		e.SetAllDayEndAt(ev.End)
		if ev.Summary != "" {
			e.SetSummary(ev.Summary)
		}
		if ev.Description != "" {
			e.SetDescription(ev.Description)
		}
	}

	return cal.Serialize()
}
