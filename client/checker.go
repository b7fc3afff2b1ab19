// Package client implements the browser-facing request coordination used by
// the booking form: a debounced, cancellable availability checker and the
// booking submission flow. Each form instance owns one Checker; instances
// share no state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"sylt/models"
	"sylt/utils"
)

// State is the checker's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateInFlight
	StateResolved
	StateFailed
)

// DefaultDebounce is how long the checker waits after the last date edit
// before issuing a request.
const DefaultDebounce = 500 * time.Millisecond

// Result is what the form renders. Message is empty for a bookable stay.
type Result struct {
	State      State
	CheckIn    string
	CheckOut   string
	Available  bool
	TotalPrice float64
	Nights     int
	Message    string
}

// Checker coordinates availability requests for a single booking form. Any
// date edit cancels the pending debounce timer and aborts the in-flight
// request before arming a new window, so at most one request is active and
// the rendered result always matches the current input. Stale responses are
// unobservable by construction: each edit bumps a generation counter and
// only the current generation may publish.
type Checker struct {
	endpoint   string
	propertyID string
	httpClient *http.Client
	debounce   time.Duration
	onUpdate   func(Result)

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	gen    uint64
}

// NewChecker builds a Checker for one form instance. onUpdate is invoked
// for every state change, always from a single logical result stream.
func NewChecker(endpoint, propertyID string, onUpdate func(Result)) *Checker {
	return &Checker{
		endpoint:   endpoint,
		propertyID: propertyID,
		httpClient: &http.Client{},
		debounce:   DefaultDebounce,
		onUpdate:   onUpdate,
	}
}

// SetDates records a change to the check-in/check-out pair. Clearing either
// field drops straight back to Idle and discards any pending or in-flight
// check.
func (c *Checker) SetDates(checkIn, checkOut string) {
	c.mu.Lock()
	c.supersedeLocked()
	gen := c.gen

	if checkIn == "" || checkOut == "" {
		c.mu.Unlock()
		c.notifyIfCurrent(gen, Result{State: StateIdle})
		return
	}

	c.timer = time.AfterFunc(c.debounce, func() {
		c.fire(gen, checkIn, checkOut)
	})
	c.mu.Unlock()
	c.notifyIfCurrent(gen, Result{State: StateDebouncing, CheckIn: checkIn, CheckOut: checkOut})
}

// Close releases the debounce timer and aborts any in-flight request. The
// checker must not be used afterwards.
func (c *Checker) Close() {
	c.mu.Lock()
	c.supersedeLocked()
	c.mu.Unlock()
}

// supersedeLocked invalidates whatever was pending or in flight. Callers
// hold c.mu.
func (c *Checker) supersedeLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

// fire runs on debounce expiry. Invalid date pairs fail here without ever
// reaching the network.
func (c *Checker) fire(gen uint64, checkIn, checkOut string) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil

	in, inErr := utils.ParseDate(checkIn)
	out, outErr := utils.ParseDate(checkOut)
	if inErr != nil || outErr != nil || !out.After(in) {
		c.mu.Unlock()
		c.notifyIfCurrent(gen, Result{
			State:    StateFailed,
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Message:  "Check-out must be after check-in.",
		})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	c.notifyIfCurrent(gen, Result{State: StateInFlight, CheckIn: checkIn, CheckOut: checkOut})
	go c.check(ctx, gen, checkIn, checkOut)
}

// check issues the availability request and publishes its outcome, unless a
// newer edit superseded it in the meantime. An aborted request is a no-op,
// not a failure; the newer request's result is authoritative.
func (c *Checker) check(ctx context.Context, gen uint64, checkIn, checkOut string) {
	result, aborted := c.doRequest(ctx, checkIn, checkOut)
	if aborted {
		return
	}
	c.publish(gen, result)
}

func (c *Checker) doRequest(ctx context.Context, checkIn, checkOut string) (Result, bool) {
	body, err := json.Marshal(models.AvailabilityCheckRequest{
		PropertyID: c.propertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		return failure(checkIn, checkOut, "Something went wrong. Please try again."), false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return failure(checkIn, checkOut, "Something went wrong. Please try again."), false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, true
		}
		return failure(checkIn, checkOut, "Could not reach the booking service."), false
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, true
		}
		return failure(checkIn, checkOut, "Could not read the server response."), false
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failure(checkIn, checkOut, serverMessage(raw, resp.StatusCode)), false
	}

	var parsed models.AvailabilityCheckResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return failure(checkIn, checkOut, "Could not read the server response."), false
	}

	if !parsed.Data.Available {
		return Result{
			State:     StateResolved,
			CheckIn:   checkIn,
			CheckOut:  checkOut,
			Available: false,
			Message:   "Not available for these dates.",
		}, false
	}

	result := Result{
		State:     StateResolved,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Available: true,
	}
	if parsed.Data.TotalPrice != nil {
		result.TotalPrice = *parsed.Data.TotalPrice
	}
	if parsed.Data.Nights != nil {
		result.Nights = *parsed.Data.Nights
	}
	return result, false
}

// publish delivers a settled result if this request is still the current
// generation.
func (c *Checker) publish(gen uint64, result Result) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.cancel = nil
	c.mu.Unlock()
	c.notify(result)
}

// notifyIfCurrent drops transitional updates that a newer edit has already
// superseded.
func (c *Checker) notifyIfCurrent(gen uint64, result Result) {
	c.mu.Lock()
	current := c.gen == gen
	c.mu.Unlock()
	if current {
		c.notify(result)
	}
}

func (c *Checker) notify(result Result) {
	if c.onUpdate != nil {
		c.onUpdate(result)
	}
}

func failure(checkIn, checkOut, message string) Result {
	return Result{State: StateFailed, CheckIn: checkIn, CheckOut: checkOut, Message: message}
}

// serverMessage extracts a human-readable error from a non-2xx body. JSON
// bodies are expected to carry "error" or "message"; anything else falls
// back to a generic templated message.
func serverMessage(raw []byte, status int) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return fmt.Sprintf("Server error (%d). Please try again later.", status)
}
