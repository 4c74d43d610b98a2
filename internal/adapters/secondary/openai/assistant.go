package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
	"github.com/lorrc/chat-relay-backend/internal/core/ports"
)

const defaultPersona = "You are a concise, friendly support agent for a small business. " +
	"Reply to the customer's latest message in their language."

const suggestionsPrompt = "Propose up to 3 short reply options an operator could send next. " +
	"Answer ONLY with a JSON array of strings, no text outside the JSON."

// Assistant is the generative-language collaborator backed by the OpenAI
// chat-completion API.
type Assistant struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

var _ ports.AIAssistant = (*Assistant)(nil)

// NewAssistant creates a new assistant.
func NewAssistant(apiKey, model string, logger *slog.Logger) *Assistant {
	return &Assistant{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger.With("component", "openai_assistant"),
	}
}

// DraftReply asks the model for one reply draft to the conversation. The
// persona, when given, overrides the default system prompt.
func (a *Assistant) DraftReply(ctx context.Context, history []domain.ChatMessage, persona string) (string, error) {
	if persona == "" {
		persona = defaultPersona
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: persona,
	})
	msgs = append(msgs, toChatMessages(history)...)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: msgs,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// SuggestReplies asks the model for a short list of reply options.
func (a *Assistant) SuggestReplies(ctx context.Context, history []domain.ChatMessage) ([]string, error) {
	msgs := toChatMessages(history)
	// Format guard goes last so the model cannot be talked out of it.
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: suggestionsPrompt,
	})

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: msgs,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: empty choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	suggestions, err := parseSuggestions(raw)
	if err != nil {
		a.logger.Warn("model returned unparseable suggestions", "error", err)
		return nil, err
	}

	return suggestions, nil
}

// parseSuggestions extracts the JSON string array, tolerating code fences
// the model sometimes wraps around it.
func parseSuggestions(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var suggestions []string
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func toChatMessages(history []domain.ChatMessage) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		role := m.Role
		switch role {
		case openai.ChatMessageRoleUser, openai.ChatMessageRoleAssistant, openai.ChatMessageRoleSystem:
		default:
			role = openai.ChatMessageRoleUser
		}
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Text,
		})
	}
	return msgs
}
