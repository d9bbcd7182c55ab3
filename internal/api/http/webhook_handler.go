package http

import (
	"io"
	"net/http"

	"github.com/saleem-shalabi/Medi-Care-App/internal/logger"
)

// maxWebhookBody caps the raw payload read from the payment provider.
const maxWebhookBody = 1 << 16

// handlePaymentWebhook receives provider callbacks. The raw body and the
// signature header go to the service untouched; signature verification
// needs the exact bytes.
func (h *Handler) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondBadRequest(w, "failed to read request body")
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if err := h.payments.HandleWebhook(r.Context(), payload, signature); err != nil {
		// A non-2xx response makes the provider retry the delivery.
		logger.Error("Webhook processing failed", "error", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"received": "true"})
}
