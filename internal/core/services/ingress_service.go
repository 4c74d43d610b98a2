package services

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
	apperrors "github.com/lorrc/chat-relay-backend/internal/core/errors"
	"github.com/lorrc/chat-relay-backend/internal/core/ports"
)

// expectedObject is the top-level object tag of deliveries we accept.
const expectedObject = "whatsapp_business_account"

// IngressService translates provider webhook deliveries into domain events
// and fans them out through the broadcaster.
type IngressService struct {
	resolver    ports.IdentityResolver
	broadcaster ports.EventBroadcaster
	verifyToken string
	logger      *slog.Logger
}

var _ ports.IngressService = (*IngressService)(nil)

// NewIngressService creates a new webhook ingress service.
func NewIngressService(
	resolver ports.IdentityResolver,
	broadcaster ports.EventBroadcaster,
	verifyToken string,
	logger *slog.Logger,
) *IngressService {
	return &IngressService{
		resolver:    resolver,
		broadcaster: broadcaster,
		verifyToken: verifyToken,
		logger:      logger.With("component", "webhook_ingress"),
	}
}

// VerifyChallenge handles the provider's subscription handshake. The
// challenge is echoed back verbatim only for mode "subscribe" with the exact
// configured token.
func (s *IngressService) VerifyChallenge(mode, token, challenge string) (string, error) {
	if mode == "" || token == "" {
		return "", apperrors.ErrVerificationMissing
	}
	if mode != "subscribe" || token != s.verifyToken {
		return "", apperrors.ErrVerificationFailed
	}
	return challenge, nil
}

// ProcessDelivery walks the entry/changes/messages structure of a delivery
// batch. One bad message never aborts the batch: unresolved senders and
// malformed entries are logged and skipped. The only error returned is an
// unknown top-level object tag; everything else acks to the provider.
func (s *IngressService) ProcessDelivery(ctx context.Context, payload ports.DeliveryPayload) error {
	if payload.Object != expectedObject {
		return apperrors.ErrUnknownObject
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				s.processMessage(msg)
			}
		}
	}

	return nil
}

func (s *IngressService) processMessage(msg ports.DeliveryMessage) {
	if msg.Text == nil || msg.From == "" {
		s.logger.Debug("skipping non-text or malformed message", "message_id", msg.ID, "type", msg.Type)
		return
	}

	contactID, ok := s.resolver.ResolveContactID(msg.From)
	if !ok {
		s.logger.Warn("skipping message from unknown sender",
			"message_id", msg.ID,
			"from", msg.From,
		)
		return
	}

	seconds, err := strconv.ParseInt(msg.Timestamp, 10, 64)
	if err != nil {
		s.logger.Warn("skipping message with invalid timestamp",
			"message_id", msg.ID,
			"timestamp", msg.Timestamp,
		)
		return
	}

	event := domain.NewMessageEvent(contactID, domain.Message{
		ID:        msg.ID,
		Text:      msg.Text.Body,
		Timestamp: domain.EpochMillis(seconds),
		Sender:    domain.SenderUser,
	})

	if err := s.broadcaster.Broadcast(event); err != nil {
		// Fan-out failure stays internal; the provider ack is unaffected.
		s.logger.Error("failed to broadcast inbound message",
			"message_id", msg.ID,
			"contact_id", contactID,
			"error", err,
		)
	}
}
