package ports

import (
	"context"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
)

// IdentityResolver defines the port for the bidirectional mapping between
// internal contact ids and external channel addresses.
type IdentityResolver interface {
	// ResolveContactID looks up the internal id for an external address.
	// The address is normalized before lookup. Absence is a normal outcome.
	ResolveContactID(address string) (string, bool)

	// ResolveAddress is the inverse lookup.
	ResolveAddress(contactID string) (string, bool)

	// Register inserts or overwrites a pair, last-write-wins. Both directions
	// are updated atomically with respect to concurrent resolves.
	Register(contactID, address string)
}

// EventBroadcaster defines the port for fanning out domain events to every
// connected dashboard session.
type EventBroadcaster interface {
	Broadcast(event domain.Event) error
}

// IngressService defines the port for provider webhook intake.
type IngressService interface {
	// VerifyChallenge handles the provider's subscription handshake and
	// returns the challenge to echo back verbatim.
	VerifyChallenge(mode, token, challenge string) (string, error)

	// ProcessDelivery consumes a webhook delivery batch. Per-message failures
	// are skipped, not returned; the only error is an unknown object tag.
	ProcessDelivery(ctx context.Context, payload DeliveryPayload) error
}

// DeliveryPayload is the provider-shaped webhook delivery body.
type DeliveryPayload struct {
	Object string          `json:"object"`
	Entry  []DeliveryEntry `json:"entry"`
}

// DeliveryEntry is one business-account entry within a delivery.
type DeliveryEntry struct {
	ID      string           `json:"id"`
	Changes []DeliveryChange `json:"changes"`
}

// DeliveryChange wraps a single change notification.
type DeliveryChange struct {
	Field string        `json:"field"`
	Value DeliveryValue `json:"value"`
}

// DeliveryValue holds the message data of a change.
type DeliveryValue struct {
	Messages []DeliveryMessage `json:"messages,omitempty"`
}

// DeliveryMessage is one inbound message as the provider ships it.
// Timestamp is a string of whole seconds since epoch.
type DeliveryMessage struct {
	ID        string        `json:"id"`
	From      string        `json:"from"`
	Timestamp string        `json:"timestamp"`
	Type      string        `json:"type"`
	Text      *DeliveryText `json:"text,omitempty"`
}

// DeliveryText holds a text message body.
type DeliveryText struct {
	Body string `json:"body"`
}

// BroadcastFailure records one recipient a broadcast could not reach.
type BroadcastFailure struct {
	ContactID string `json:"contactId"`
	Reason    string `json:"reason"`
}

// BroadcastResult aggregates per-recipient outcomes of a broadcast send.
type BroadcastResult struct {
	Sent     []string           `json:"sent"`
	Failures []BroadcastFailure `json:"failures"`
}

// AllSucceeded reports whether every recipient was reached.
func (r BroadcastResult) AllSucceeded() bool {
	return len(r.Failures) == 0
}

// CommandService defines the dashboard-originated operations.
type CommandService interface {
	SendMessage(ctx context.Context, contactID, text string) error
	SendBroadcast(ctx context.Context, contactIDs []string, text string) (BroadcastResult, error)
	DraftReply(ctx context.Context, history []domain.ChatMessage, persona, contactID string) (string, error)
	SuggestReplies(ctx context.Context, history []domain.ChatMessage) ([]string, error)
}

// MessageSender defines the port for the outbound provider API.
type MessageSender interface {
	SendText(ctx context.Context, toAddress, text string) error
}

// AIAssistant defines the port for the generative-language collaborator.
type AIAssistant interface {
	DraftReply(ctx context.Context, history []domain.ChatMessage, persona string) (string, error)
	SuggestReplies(ctx context.Context, history []domain.ChatMessage) ([]string, error)
}

// ContactDirectory defines the port for the external contact store that seeds
// the resolver at startup and records registrations.
type ContactDirectory interface {
	LoadAll(ctx context.Context) ([]domain.ContactIdentity, error)
	Save(ctx context.Context, contact domain.ContactIdentity) error
}
