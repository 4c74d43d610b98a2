package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/chat-relay-backend/internal/core/ports"
)

// WebhookHandler is the provider-facing intake: subscription verification on
// GET, delivery batches on POST.
type WebhookHandler struct {
	ingress      ports.IngressService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(ingress ports.IngressService, errorHandler *ErrorHandler, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		ingress:      ingress,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// RegisterRoutes registers the webhook endpoints.
func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleVerification)
	r.Post("/", h.HandleDelivery)
}

// HandleVerification answers the provider's challenge handshake with the
// challenge echoed as plain text. The provider sends the dotted hub.* query
// names; the bare names are accepted as well.
func (h *WebhookHandler) HandleVerification(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode := firstNonEmpty(q.Get("hub.mode"), q.Get("hub_mode"), q.Get("mode"))
	token := firstNonEmpty(q.Get("hub.verify_token"), q.Get("hub_verify_token"), q.Get("verify_token"))
	challenge := firstNonEmpty(q.Get("hub.challenge"), q.Get("hub_challenge"), q.Get("challenge"))

	echo, err := h.ingress.VerifyChallenge(mode, token, challenge)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("webhook verified", "request_id", GetRequestID(r.Context()))

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(echo))
}

// HandleDelivery accepts a delivery batch. The provider expects a fast 2xx
// ack regardless of internal resolution outcomes; only a body that is not a
// delivery at all (bad JSON, wrong object tag) is rejected.
func (h *WebhookHandler) HandleDelivery(w http.ResponseWriter, r *http.Request) {
	var payload ports.DeliveryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Warn("webhook delivery with invalid body",
			"request_id", GetRequestID(r.Context()),
			"error", err,
		)
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := h.ingress.ProcessDelivery(r.Context(), payload); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
