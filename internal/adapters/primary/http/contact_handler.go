package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/lorrc/chat-relay-backend/internal/core/errors"
	"github.com/lorrc/chat-relay-backend/internal/core/services"
)

// ContactHandler exposes the explicit contact registration path.
type ContactHandler struct {
	contacts     *services.ContactService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contacts *services.ContactService, errorHandler *ErrorHandler, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contacts:     contacts,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// RegisterRoutes registers the contact endpoints.
func (h *ContactHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreateContact)
	r.Get("/", h.HandleListContacts)
}

// CreateContactRequest is the body for registering a contact.
type CreateContactRequest struct {
	ContactID string `json:"contactId,omitempty"`
	Address   string `json:"address"`
	Name      string `json:"name,omitempty"`
}

// HandleCreateContact registers a contact and returns the stored identity.
func (h *ContactHandler) HandleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid request body"))
		return
	}

	contact, err := h.contacts.CreateContact(r.Context(), req.ContactID, req.Address, req.Name)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteCreated(w, contact)
}

// HandleListContacts returns the known contact list for the dashboard.
func (h *ContactHandler) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.ListContacts(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, contacts)
}
