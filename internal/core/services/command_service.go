package services

import (
	"context"
	"log/slog"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
	apperrors "github.com/lorrc/chat-relay-backend/internal/core/errors"
	"github.com/lorrc/chat-relay-backend/internal/core/ports"
)

// CommandService implements dashboard-originated actions. Outbound sends go
// straight to the provider collaborator and are not mirrored back through
// the broadcaster.
type CommandService struct {
	resolver  ports.IdentityResolver
	sender    ports.MessageSender
	assistant ports.AIAssistant
	logger    *slog.Logger
}

var _ ports.CommandService = (*CommandService)(nil)

// NewCommandService creates a new command service. Sender and assistant may
// be nil when the corresponding credentials are absent; operations needing
// them fail with a configuration error instead.
func NewCommandService(
	resolver ports.IdentityResolver,
	sender ports.MessageSender,
	assistant ports.AIAssistant,
	logger *slog.Logger,
) *CommandService {
	return &CommandService{
		resolver:  resolver,
		sender:    sender,
		assistant: assistant,
		logger:    logger.With("component", "command_service"),
	}
}

// SendMessage delivers one message to a single contact.
func (s *CommandService) SendMessage(ctx context.Context, contactID, text string) error {
	if contactID == "" {
		return apperrors.ErrContactIDRequired
	}
	if text == "" {
		return apperrors.ErrTextRequired
	}
	if s.sender == nil {
		return apperrors.ErrSenderNotConfigured
	}

	address, ok := s.resolver.ResolveAddress(contactID)
	if !ok {
		return apperrors.ErrContactNotFound
	}

	if err := s.sender.SendText(ctx, address, text); err != nil {
		s.logger.Error("outbound send failed", "contact_id", contactID, "error", err)
		return apperrors.NewBadGatewayError(err, "message delivery to provider failed")
	}

	return nil
}

// SendBroadcast attempts delivery to every recipient and aggregates the
// outcome. An unresolvable contact counts as a failure without an attempt;
// one failed recipient never aborts the rest. The returned error is reserved
// for conditions that prevent any attempt at all.
func (s *CommandService) SendBroadcast(ctx context.Context, contactIDs []string, text string) (ports.BroadcastResult, error) {
	var result ports.BroadcastResult

	if len(contactIDs) == 0 {
		return result, apperrors.ErrRecipientsRequired
	}
	if text == "" {
		return result, apperrors.ErrTextRequired
	}
	if s.sender == nil {
		return result, apperrors.ErrSenderNotConfigured
	}

	for _, contactID := range contactIDs {
		address, ok := s.resolver.ResolveAddress(contactID)
		if !ok {
			result.Failures = append(result.Failures, ports.BroadcastFailure{
				ContactID: contactID,
				Reason:    apperrors.ErrContactNotFound.Error(),
			})
			continue
		}

		if err := s.sender.SendText(ctx, address, text); err != nil {
			s.logger.Warn("broadcast recipient failed", "contact_id", contactID, "error", err)
			result.Failures = append(result.Failures, ports.BroadcastFailure{
				ContactID: contactID,
				Reason:    err.Error(),
			})
			continue
		}

		result.Sent = append(result.Sent, contactID)
	}

	return result, nil
}

// DraftReply asks the AI collaborator for a reply draft to the conversation.
func (s *CommandService) DraftReply(ctx context.Context, history []domain.ChatMessage, persona, contactID string) (string, error) {
	if len(history) == 0 {
		return "", apperrors.ErrHistoryRequired
	}
	if s.assistant == nil {
		return "", apperrors.ErrAssistantNotConfigured
	}

	draft, err := s.assistant.DraftReply(ctx, history, persona)
	if err != nil {
		s.logger.Error("ai draft failed", "contact_id", contactID, "error", err)
		return "", apperrors.NewBadGatewayError(err, "ai draft request failed")
	}

	return draft, nil
}

// SuggestReplies asks the AI collaborator for a short list of reply options.
func (s *CommandService) SuggestReplies(ctx context.Context, history []domain.ChatMessage) ([]string, error) {
	if len(history) == 0 {
		return nil, apperrors.ErrHistoryRequired
	}
	if s.assistant == nil {
		return nil, apperrors.ErrAssistantNotConfigured
	}

	suggestions, err := s.assistant.SuggestReplies(ctx, history)
	if err != nil {
		s.logger.Error("ai suggestions failed", "error", err)
		return nil, apperrors.NewBadGatewayError(err, "ai suggestions request failed")
	}

	return suggestions, nil
}
