package ical

import (
	"strings"

	"sylt/models"
)

// DetectBookingSource classifies a feed by its metadata. It inspects the
// PRODID and ORGANIZER lines for known OTA markers; this is a heuristic over
// feed content, not the feed URL. Priority order: booking.com, airbnb,
// expedia; anything else is a direct booking calendar.
func DetectBookingSource(feed string) models.BookingSource {
	var meta strings.Builder

	for _, raw := range strings.Split(feed, "\n") {
		line := strings.TrimRight(raw, "\r")
		name, _, ok := splitProperty(line)
		if !ok {
			continue
		}
		if name == "PRODID" || name == "ORGANIZER" {
			meta.WriteString(strings.ToLower(line))
			meta.WriteString("\n")
		}
	}

	haystack := meta.String()
	switch {
	case strings.Contains(haystack, "booking.com"):
		return models.SourceBookingCom
	case strings.Contains(haystack, "airbnb"):
		return models.SourceAirbnb
	case strings.Contains(haystack, "expedia"):
		return models.SourceExpedia
	default:
		return models.SourceDirect
	}
}
