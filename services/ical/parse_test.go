package ical

import (
	"strings"
	"testing"
	"time"
)

const sampleFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Airbnb Inc//Hosting Calendar 0.8.8//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:abc123@airbnb.com\r\n" +
	"DTSTART;VALUE=DATE:20250610\r\n" +
	"DTEND;VALUE=DATE:20250613\r\n" +
	"SUMMARY:Reserved\r\n" +
	"DESCRIPTION:Guest stay\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:No dates or uid here\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:def456@airbnb.com\r\n" +
	"DTSTART:20250701T140000Z\r\n" +
	"DTEND:20250703T100000Z\r\n" +
	"SUMMARY:Reserved\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParse(t *testing.T) {
	events := Parse(sampleFeed)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (malformed block must be dropped)", len(events))
	}

	first := events[0]
	if first.UID != "abc123@airbnb.com" {
		t.Errorf("UID = %q", first.UID)
	}
	if first.Summary != "Reserved" || first.Description != "Guest stay" {
		t.Errorf("summary/description = %q / %q", first.Summary, first.Description)
	}
	if got := first.Start.Format("2006-01-02"); got != "2025-06-10" {
		t.Errorf("Start = %s, want 2025-06-10", got)
	}
	if got := first.End.Format("2006-01-02"); got != "2025-06-13" {
		t.Errorf("End = %s, want 2025-06-13", got)
	}

	second := events[1]
	want := time.Date(2025, time.July, 1, 14, 0, 0, 0, time.UTC)
	if !second.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", second.Start, want)
	}
}

func TestParseEmptyAndGarbageFeeds(t *testing.T) {
	if events := Parse(""); len(events) != 0 {
		t.Errorf("empty feed produced %d events", len(events))
	}
	if events := Parse("this is not\nan ical feed\nat all"); len(events) != 0 {
		t.Errorf("garbage feed produced %d events", len(events))
	}
}

func TestParseICalDateForms(t *testing.T) {
	d, err := parseICalDate("20250610")
	if err != nil {
		t.Fatalf("date form: %v", err)
	}
	if d.Hour() != 0 || d.Format("2006-01-02") != "2025-06-10" {
		t.Errorf("date form parsed as %v", d)
	}

	utc, err := parseICalDate("20250610T153000Z")
	if err != nil {
		t.Fatalf("utc form: %v", err)
	}
	if utc.Location() != time.UTC || utc.Hour() != 15 {
		t.Errorf("utc form parsed as %v", utc)
	}

	local, err := parseICalDate("20250610T153000")
	if err != nil {
		t.Fatalf("local form: %v", err)
	}
	if local.Hour() != 15 {
		t.Errorf("local form parsed as %v", local)
	}

	if _, err := parseICalDate("junk"); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestDetectBookingSource(t *testing.T) {
	tests := []struct {
		name string
		feed string
		want string
	}{
		{"airbnb prodid", "PRODID:-//Airbnb Inc//Hosting Calendar//EN\n", "airbnb"},
		{"booking.com organizer", "ORGANIZER;CN=Partner:mailto:noreply@Booking.com\n", "booking.com"},
		{"expedia prodid", "PRODID:-//Expedia Group//EN\n", "expedia"},
		{"booking.com beats airbnb", "PRODID:-//Airbnb//EN\nORGANIZER:mailto:x@booking.com\n", "booking.com"},
		{"no marker", "PRODID:-//Sylt//Booking Calendar//EN\n", "direct"},
		{"marker outside metadata lines ignored", "SUMMARY:airbnb guest\n", "direct"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectBookingSource(tt.feed); string(got) != tt.want {
				t.Errorf("DetectBookingSource = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlockedDates(t *testing.T) {
	events := Parse(sampleFeed)
	dates := BlockedDates(events)

	want := []string{"2025-06-10", "2025-06-11", "2025-06-12", "2025-07-01", "2025-07-02"}
	if len(dates) != len(want) {
		t.Fatalf("got %d blocked dates %v, want %d", len(dates), dates, len(want))
	}
	for i, w := range want {
		if dates[i] != w {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], w)
		}
	}
}

func TestBlockedDatesKeepsDuplicatesFromOverlappingEvents(t *testing.T) {
	feed := "BEGIN:VEVENT\nUID:a\nDTSTART:20250610\nDTEND:20250612\nEND:VEVENT\n" +
		"BEGIN:VEVENT\nUID:b\nDTSTART:20250611\nDTEND:20250613\nEND:VEVENT\n"
	dates := BlockedDates(Parse(feed))
	if len(dates) != 4 {
		t.Fatalf("got %d entries %v, want 4 (duplicates preserved)", len(dates), dates)
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	events := Parse(sampleFeed)[:1]
	out := Generate("Room 1", events)

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "BEGIN:VEVENT") {
		t.Fatalf("generated feed missing calendar structure:\n%s", out)
	}

	parsed := Parse(out)
	if len(parsed) != 1 {
		t.Fatalf("round trip produced %d events, want 1", len(parsed))
	}
	if got := parsed[0].Start.Format("2006-01-02"); got != events[0].Start.Format("2006-01-02") {
		t.Errorf("round trip start = %s, want %s", got, events[0].Start.Format("2006-01-02"))
	}
	if got := parsed[0].End.Format("2006-01-02"); got != events[0].End.Format("2006-01-02") {
		t.Errorf("round trip end = %s, want %s", got, events[0].End.Format("2006-01-02"))
	}
}

func TestFormatICalDateDropsTime(t *testing.T) {
	d := time.Date(2025, time.June, 10, 16, 30, 0, 0, time.UTC)
	if got := formatICalDate(d); got != "20250610" {
		t.Errorf("formatICalDate = %q", got)
	}
	back, err := parseICalDate(formatICalDate(d))
	if err != nil {
		t.Fatalf("parseICalDate: %v", err)
	}
	if back.Format("2006-01-02") != "2025-06-10" {
		t.Errorf("round trip calendar date = %v", back)
	}
}
