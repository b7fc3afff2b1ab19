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
)

// confirmationTimeout bounds how long a confirmation lookup may take before
// it is treated as failed.
const confirmationTimeout = 10 * time.Second

// BookingClient submits bookings and looks up their confirmation state. It
// follows the same cancellation discipline as the Checker: a new submission
// aborts the previous in-flight one, so a double-clicked submit button can
// never create two racing requests from one form.
type BookingClient struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewBookingClient builds a BookingClient against the API base URL, e.g.
// "https://sylt.example/api".
func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Submit creates a booking and returns the payment redirect URL. A previous
// in-flight submission from this client is aborted first.
func (b *BookingClient) Submit(ctx context.Context, req models.BookingRequest) (string, error) {
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.mu.Unlock()
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("booking failed: %s", serverMessage(raw, resp.StatusCode))
	}

	var parsed models.BookingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if parsed.PaymentURL == "" {
		return "", fmt.Errorf("booking response missing payment URL")
	}
	return parsed.PaymentURL, nil
}

// Confirmation fetches the booking record after the guest returns from
// payment. The lookup is bounded by an explicit 10 second timeout.
func (b *BookingClient) Confirmation(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, confirmationTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/bookings/"+bookingID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("confirmation lookup failed: %s", serverMessage(raw, resp.StatusCode))
	}

	var booking models.Booking
	if err := json.Unmarshal(raw, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
