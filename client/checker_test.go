package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"sylt/models"
)

// resultSink collects checker updates and lets tests wait for a settled
// state.
type resultSink struct {
	mu      sync.Mutex
	results []Result
	settled chan Result
}

func newResultSink() *resultSink {
	return &resultSink{settled: make(chan Result, 16)}
}

func (s *resultSink) collect(r Result) {
	s.mu.Lock()
	s.results = append(s.results, r)
	s.mu.Unlock()
	if r.State == StateResolved || r.State == StateFailed || r.State == StateIdle {
		s.settled <- r
	}
}

func (s *resultSink) waitSettled(t *testing.T) Result {
	t.Helper()
	select {
	case r := <-s.settled:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a settled result")
		return Result{}
	}
}

func newTestChecker(t *testing.T, handler http.HandlerFunc) (*Checker, *resultSink) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sink := newResultSink()
	c := NewChecker(srv.URL, "room-1", sink.collect)
	c.debounce = 30 * time.Millisecond
	t.Cleanup(c.Close)
	return c, sink
}

func availableHandler(requests *int64, lastBody *atomic.Value) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)
		var req models.AvailabilityCheckRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if lastBody != nil {
			lastBody.Store(req)
		}
		total := 715.0
		nights := 5
		_ = json.NewEncoder(w).Encode(models.AvailabilityCheckResponse{
			Success: true,
			Data:    models.AvailabilityResult{Available: true, TotalPrice: &total, Nights: &nights},
		})
	}
}

func TestCheckerResolvesAvailableStay(t *testing.T) {
	var requests int64
	c, sink := newTestChecker(t, availableHandler(&requests, nil))

	c.SetDates("2025-07-07", "2025-07-12")
	r := sink.waitSettled(t)

	if r.State != StateResolved || !r.Available {
		t.Fatalf("settled result = %+v, want resolved available", r)
	}
	if r.TotalPrice != 715 || r.Nights != 5 {
		t.Errorf("price/nights = %v/%d", r.TotalPrice, r.Nights)
	}
}

func TestCheckerDebouncesRapidEdits(t *testing.T) {
	var requests int64
	var lastBody atomic.Value
	c, sink := newTestChecker(t, availableHandler(&requests, &lastBody))

	// Three edits inside the debounce window: only the last pair may reach
	// the network.
	c.SetDates("2025-07-01", "2025-07-02")
	c.SetDates("2025-07-01", "2025-07-05")
	c.SetDates("2025-07-07", "2025-07-12")

	r := sink.waitSettled(t)
	if r.State != StateResolved {
		t.Fatalf("settled result = %+v", r)
	}
	if got := atomic.LoadInt64(&requests); got != 1 {
		t.Errorf("issued %d requests, want exactly 1", got)
	}
	req := lastBody.Load().(models.AvailabilityCheckRequest)
	if req.CheckIn != "2025-07-07" || req.CheckOut != "2025-07-12" {
		t.Errorf("request carried %s/%s, want the last pair", req.CheckIn, req.CheckOut)
	}
	if r.CheckIn != "2025-07-07" || r.CheckOut != "2025-07-12" {
		t.Errorf("result labelled %s/%s, want the last pair", r.CheckIn, r.CheckOut)
	}
}

func TestCheckerEditDuringInFlightSupersedes(t *testing.T) {
	var requests int64
	release := make(chan struct{})
	handler := func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&requests, 1)
		if n == 1 {
			// Hold the first request until the second has settled; its
			// response must never surface.
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
		}
		total := 900.0
		nights := 3
		_ = json.NewEncoder(w).Encode(models.AvailabilityCheckResponse{
			Success: true,
			Data:    models.AvailabilityResult{Available: true, TotalPrice: &total, Nights: &nights},
		})
	}
	c, sink := newTestChecker(t, handler)

	c.SetDates("2025-07-01", "2025-07-04")
	// Wait past the debounce so the first request is actually in flight.
	time.Sleep(80 * time.Millisecond)
	c.SetDates("2025-08-01", "2025-08-04")

	r := sink.waitSettled(t)
	close(release)

	if r.CheckIn != "2025-08-01" {
		t.Errorf("settled result for %s, want the superseding pair", r.CheckIn)
	}
}

func TestCheckerInvalidPairFailsWithoutRequest(t *testing.T) {
	var requests int64
	c, sink := newTestChecker(t, availableHandler(&requests, nil))

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"reversed", "2025-07-12", "2025-07-07"},
		{"equal", "2025-07-07", "2025-07-07"},
		{"unparseable", "tomorrow", "2025-07-07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.SetDates(tt.checkIn, tt.checkOut)
			r := sink.waitSettled(t)
			if r.State != StateFailed || r.Message == "" {
				t.Errorf("settled result = %+v, want failed with message", r)
			}
		})
	}
	if got := atomic.LoadInt64(&requests); got != 0 {
		t.Errorf("invalid pairs issued %d requests, want 0", got)
	}
}

func TestCheckerClearingDatesGoesIdle(t *testing.T) {
	var requests int64
	c, sink := newTestChecker(t, availableHandler(&requests, nil))

	c.SetDates("2025-07-07", "")
	if r := sink.waitSettled(t); r.State != StateIdle {
		t.Errorf("result = %+v, want idle", r)
	}

	// Clearing mid-debounce discards the pending check entirely.
	c.SetDates("2025-07-07", "2025-07-12")
	c.SetDates("", "")
	if r := sink.waitSettled(t); r.State != StateIdle {
		t.Errorf("result = %+v, want idle", r)
	}
	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt64(&requests); got != 0 {
		t.Errorf("cleared form issued %d requests, want 0", got)
	}
}

func TestCheckerUnavailableStayIsResolvedNotFailed(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.AvailabilityCheckResponse{
			Success: true,
			Data:    models.AvailabilityResult{Available: false},
		})
	}
	c, sink := newTestChecker(t, handler)

	c.SetDates("2025-07-07", "2025-07-12")
	r := sink.waitSettled(t)

	if r.State != StateResolved || r.Available {
		t.Fatalf("settled result = %+v, want resolved unavailable", r)
	}
	if r.Message == "" {
		t.Error("unavailable result should carry a user-facing message")
	}
}

func TestCheckerServerErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			"json error body",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"room not found"}`))
			},
			"room not found",
		},
		{
			"plain text body falls back to generic",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("boom"))
			},
			"Server error (500). Please try again later.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sink := newTestChecker(t, tt.handler)
			c.SetDates("2025-07-07", "2025-07-12")
			r := sink.waitSettled(t)
			if r.State != StateFailed {
				t.Fatalf("state = %v, want failed", r.State)
			}
			if r.Message != tt.want {
				t.Errorf("message = %q, want %q", r.Message, tt.want)
			}
		})
	}
}
