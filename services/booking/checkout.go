package booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	"sylt/models"
)

// CheckoutProvider creates a hosted payment session for a pending booking
// and returns the redirect URL. The rest of the system treats that URL as
// opaque.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, booking *models.Booking, roomName string) (string, error)
}

// StripeCheckout implements CheckoutProvider with Stripe Checkout. The
// global API key is set once at startup from config.
type StripeCheckout struct {
	SuccessURL string
	CancelURL  string
}

func (s *StripeCheckout) CreateSession(ctx context.Context, booking *models.Booking, roomName string) (string, error) {
	description := fmt.Sprintf("%s, %d night(s), %s to %s", roomName, booking.Nights, booking.CheckIn, booking.CheckOut)

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.SuccessURL),
		CancelURL:         stripe.String(s.CancelURL),
		CustomerEmail:     stripe.String(booking.GuestEmail),
		ClientReferenceID: stripe.String(booking.ID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(booking.Currency),
					UnitAmount: stripe.Int64(int64(math.Round(booking.TotalPrice * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
			},
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return "", err
	}
	if sess.URL == "" {
		return "", errors.New("stripe session missing redirect URL")
	}
	return sess.URL, nil
}

var _ CheckoutProvider = (*StripeCheckout)(nil)
