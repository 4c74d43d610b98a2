package services

import (
	"sync"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
	"github.com/lorrc/chat-relay-backend/internal/core/ports"
)

// IdentityService owns the bidirectional contact id <-> external address
// mapping. Both maps are guarded by one lock so the bijection invariant holds
// at every observable instant.
type IdentityService struct {
	mu        sync.RWMutex
	byContact map[string]string // contact id -> normalized address
	byAddress map[string]string // normalized address -> contact id
}

var _ ports.IdentityResolver = (*IdentityService)(nil)

// NewIdentityService creates a resolver seeded with the given pairs.
// Seed entries are registered in order, so later duplicates win.
func NewIdentityService(seed []domain.ContactIdentity) *IdentityService {
	s := &IdentityService{
		byContact: make(map[string]string, len(seed)),
		byAddress: make(map[string]string, len(seed)),
	}
	for _, c := range seed {
		s.Register(c.ContactID, c.Address)
	}
	return s
}

// ResolveContactID returns the internal id for an external address.
// Unknown addresses are a normal outcome, not an error.
func (s *IdentityService) ResolveContactID(address string) (string, bool) {
	normalized := domain.NormalizeAddress(address)

	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byAddress[normalized]
	return id, ok
}

// ResolveAddress returns the normalized external address for an internal id.
func (s *IdentityService) ResolveAddress(contactID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	address, ok := s.byContact[contactID]
	return address, ok
}

// Register inserts or overwrites a pair, last-write-wins. Stale reverse
// entries on either side are removed so no two ids ever share an address.
func (s *IdentityService) Register(contactID, address string) {
	normalized := domain.NormalizeAddress(address)

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byContact[contactID]; ok && old != normalized {
		delete(s.byAddress, old)
	}
	if old, ok := s.byAddress[normalized]; ok && old != contactID {
		delete(s.byContact, old)
	}

	s.byContact[contactID] = normalized
	s.byAddress[normalized] = contactID
}

// Len returns the number of registered contacts.
func (s *IdentityService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byContact)
}
