package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
	apperrors "github.com/lorrc/chat-relay-backend/internal/core/errors"
	"github.com/lorrc/chat-relay-backend/internal/core/ports"
)

// ContactService is the explicit registration path for contacts created by
// the surrounding system. It keeps the resolver and the optional external
// directory in step and tracks the known contact list for the dashboard.
type ContactService struct {
	resolver  ports.IdentityResolver
	directory ports.ContactDirectory
	logger    *slog.Logger

	mu       sync.RWMutex
	contacts map[string]domain.ContactIdentity
}

// NewContactService creates a contact service seeded with the given set.
// The directory may be nil when no external store is configured.
func NewContactService(
	resolver ports.IdentityResolver,
	directory ports.ContactDirectory,
	seed []domain.ContactIdentity,
	logger *slog.Logger,
) *ContactService {
	s := &ContactService{
		resolver:  resolver,
		directory: directory,
		logger:    logger.With("component", "contact_service"),
		contacts:  make(map[string]domain.ContactIdentity, len(seed)),
	}
	for _, c := range seed {
		c.Address = domain.NormalizeAddress(c.Address)
		s.contacts[c.ContactID] = c
	}
	return s
}

// CreateContact registers a new contact. A missing id is generated. The
// resolver is updated synchronously; directory persistence is best-effort
// and never fails the registration.
func (s *ContactService) CreateContact(ctx context.Context, contactID, address, name string) (domain.ContactIdentity, error) {
	if address == "" {
		return domain.ContactIdentity{}, apperrors.ErrAddressRequired
	}
	if contactID == "" {
		contactID = uuid.NewString()
	}

	contact := domain.ContactIdentity{
		ContactID: contactID,
		Address:   domain.NormalizeAddress(address),
		Name:      name,
	}

	s.resolver.Register(contact.ContactID, contact.Address)

	s.mu.Lock()
	s.contacts[contact.ContactID] = contact
	s.mu.Unlock()

	if s.directory != nil {
		if err := s.directory.Save(ctx, contact); err != nil {
			s.logger.Error("failed to persist contact", "contact_id", contact.ContactID, "error", err)
		}
	}

	return contact, nil
}

// ListContacts returns the known contacts ordered by id.
func (s *ContactService) ListContacts(ctx context.Context) ([]domain.ContactIdentity, error) {
	s.mu.RLock()
	contacts := make([]domain.ContactIdentity, 0, len(s.contacts))
	for _, c := range s.contacts {
		contacts = append(contacts, c)
	}
	s.mu.RUnlock()

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].ContactID < contacts[j].ContactID
	})
	return contacts, nil
}
