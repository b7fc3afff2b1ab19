package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"sylt/config"
	"sylt/services/booking"
)

// maxWebhookBody bounds the webhook payload read, per Stripe's guidance.
const maxWebhookBody = 65536

// PaymentWebhookHandler resolves booking payment state from Stripe checkout
// events. The booking id travels in the session's client_reference_id.
type PaymentWebhookHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewPaymentWebhookHandler constructs a PaymentWebhookHandler.
func NewPaymentWebhookHandler(svc booking.BookingService, logger *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{Service: svc, Logger: logger}
}

// HandleWebhook handles POST /api/payments/webhook.
func (h *PaymentWebhookHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		h.Logger.Warn("webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.expired":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			h.Logger.Error("webhook payload decode failed", zap.String("type", string(event.Type)), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
			return
		}
		if session.ClientReferenceID == "" {
			// Not one of ours; acknowledge and move on.
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		succeeded := event.Type == "checkout.session.completed"
		if err := h.Service.ResolvePayment(c.Request.Context(), session.ClientReferenceID, succeeded); err != nil {
			h.Logger.Error("payment resolution failed",
				zap.String("bookingId", session.ClientReferenceID),
				zap.Error(err))
			// Non-2xx makes Stripe retry the delivery.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
			return
		}
	default:
		// Unhandled event types are acknowledged so Stripe stops retrying.
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
