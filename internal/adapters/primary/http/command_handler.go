package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
	apperrors "github.com/lorrc/chat-relay-backend/internal/core/errors"
	"github.com/lorrc/chat-relay-backend/internal/core/ports"
)

// CommandHandler exposes dashboard-originated actions: sends, broadcasts and
// AI draft requests.
type CommandHandler struct {
	commands     ports.CommandService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewCommandHandler creates a new command handler.
func NewCommandHandler(commands ports.CommandService, errorHandler *ErrorHandler, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{
		commands:     commands,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// RegisterRoutes registers the command endpoints.
func (h *CommandHandler) RegisterRoutes(r chi.Router) {
	r.Post("/messages", h.HandleSendMessage)
	r.Post("/messages/broadcast", h.HandleSendBroadcast)
	r.Post("/ai/draft", h.HandleDraftReply)
	r.Post("/ai/suggestions", h.HandleSuggestReplies)
}

// SendMessageRequest is the body for a single outbound send.
type SendMessageRequest struct {
	ContactID string `json:"contactId"`
	Text      string `json:"text"`
}

// HandleSendMessage sends one message to one contact.
func (h *CommandHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid request body"))
		return
	}

	if err := h.commands.SendMessage(r.Context(), req.ContactID, req.Text); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "sent"})
}

// SendBroadcastRequest is the body for a broadcast send.
type SendBroadcastRequest struct {
	ContactIDs []string `json:"contactIds"`
	Text       string   `json:"text"`
}

// BroadcastResponse reports per-recipient outcomes of a broadcast.
type BroadcastResponse struct {
	Sent     []string                 `json:"sent"`
	Failures []ports.BroadcastFailure `json:"failures"`
}

// HandleSendBroadcast sends one message to many contacts. All recipients
// reached -> 200; partial success -> 207 Multi-Status; an error before any
// attempt (validation, missing configuration) maps through the error handler.
func (h *CommandHandler) HandleSendBroadcast(w http.ResponseWriter, r *http.Request) {
	var req SendBroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid request body"))
		return
	}

	result, err := h.commands.SendBroadcast(r.Context(), req.ContactIDs, req.Text)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := BroadcastResponse{Sent: result.Sent, Failures: result.Failures}
	if response.Sent == nil {
		response.Sent = []string{}
	}
	if response.Failures == nil {
		response.Failures = []ports.BroadcastFailure{}
	}

	status := http.StatusOK
	if !result.AllSucceeded() {
		status = http.StatusMultiStatus
	}
	WriteJSON(w, status, response)
}

// DraftReplyRequest is the body for an AI draft request.
type DraftReplyRequest struct {
	History   []domain.ChatMessage `json:"history"`
	Persona   string               `json:"persona,omitempty"`
	ContactID string               `json:"contactId,omitempty"`
}

// HandleDraftReply returns an AI-drafted reply for a conversation.
func (h *CommandHandler) HandleDraftReply(w http.ResponseWriter, r *http.Request) {
	var req DraftReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid request body"))
		return
	}

	draft, err := h.commands.DraftReply(r.Context(), req.History, req.Persona, req.ContactID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, map[string]string{"draft": draft})
}

// SuggestRepliesRequest is the body for an AI suggestions request.
type SuggestRepliesRequest struct {
	History []domain.ChatMessage `json:"history"`
}

// HandleSuggestReplies returns a short list of AI reply suggestions.
func (h *CommandHandler) HandleSuggestReplies(w http.ResponseWriter, r *http.Request) {
	var req SuggestRepliesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid request body"))
		return
	}

	suggestions, err := h.commands.SuggestReplies(r.Context(), req.History)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, map[string][]string{"suggestions": suggestions})
}
