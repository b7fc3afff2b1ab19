package ical

import (
	"strings"
	"time"

	"sylt/models"
)

// Parse extracts reservation events from a raw VCALENDAR feed.
//
// OTA partner feeds are known to be inconsistent, so parsing is deliberately
// lenient: the scan is line-oriented, property parameters (everything between
// ';' and ':') are ignored, and any VEVENT block missing UID, DTSTART or
// DTEND is dropped silently instead of failing the whole feed.
func Parse(feed string) []models.CalendarEvent {
	var events []models.CalendarEvent

	var current *models.CalendarEvent
	var haveStart, haveEnd bool

	for _, raw := range strings.Split(feed, "\n") {
		line := strings.TrimRight(raw, "\r")

		switch {
		case line == "BEGIN:VEVENT":
			current = &models.CalendarEvent{}
			haveStart, haveEnd = false, false

		case line == "END:VEVENT":
			if current != nil && current.UID != "" && haveStart && haveEnd {
				events = append(events, *current)
			}
			current = nil

		case current != nil:
			name, value, ok := splitProperty(line)
			if !ok {
				continue
			}
			switch name {
			case "UID":
				current.UID = value
			case "SUMMARY":
				current.Summary = value
			case "DESCRIPTION":
				current.Description = value
			case "DTSTART":
				if t, err := parseICalDate(value); err == nil {
					current.Start = t
					haveStart = true
				}
			case "DTEND":
				if t, err := parseICalDate(value); err == nil {
					current.End = t
					haveEnd = true
				}
			}
		}
	}

	return events
}

// splitProperty splits an iCal content line into its bare property name and
// value. Parameters after ';' in the name part are discarded.
func splitProperty(line string) (name, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	name = line[:idx]
	value = line[idx+1:]
	if semi := strings.Index(name, ";"); semi >= 0 {
		name = name[:semi]
	}
	return strings.ToUpper(strings.TrimSpace(name)), strings.TrimSpace(value), true
}

// parseICalDate parses the DATE and DATE-TIME forms found in OTA feeds.
// An 8-character value (YYYYMMDD) is a local calendar date at midnight.
// Longer values carry a time part; a trailing 'Z' marks a UTC instant,
// otherwise local time is assumed.
func parseICalDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)

	if len(v) == 8 {
		return time.ParseInLocation("20060102", v, time.Local)
	}
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	return time.ParseInLocation("20060102T150405", v, time.Local)
}

// formatICalDate renders the all-day DATE form. Time-of-day is not
// preserved, matching the all-day-block convention of blocked dates.
func formatICalDate(t time.Time) string {
	return t.Format("20060102")
}
