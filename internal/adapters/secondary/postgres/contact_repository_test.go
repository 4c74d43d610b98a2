package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
)

// newTestRepo is a helper to create the repository for a test.
func newTestRepo(t *testing.T) *ContactRepository {
	require.NotNil(t, testPool, "testPool is nil. TestMain may not have run.")
	return NewContactRepository(testPool)
}

func TestContactRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	contact := domain.ContactIdentity{
		ContactID: "cust-" + uuid.NewString(),
		Address:   "1555" + uuid.NewString()[:8],
		Name:      "Ada",
	}

	require.NoError(t, repo.Save(ctx, contact))

	contacts, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	found := findContact(contacts, contact.ContactID)
	require.NotNil(t, found)
	assert.Equal(t, contact.Address, found.Address)
	assert.Equal(t, "Ada", found.Name)
}

func TestContactRepository_SaveUpdatesExistingContact(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	contactID := "cust-" + uuid.NewString()
	first := domain.ContactIdentity{ContactID: contactID, Address: "1555" + uuid.NewString()[:8]}
	second := domain.ContactIdentity{ContactID: contactID, Address: "1555" + uuid.NewString()[:8], Name: "Renamed"}

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	contacts, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	found := findContact(contacts, contactID)
	require.NotNil(t, found)
	assert.Equal(t, second.Address, found.Address)
	assert.Equal(t, "Renamed", found.Name)
}

func TestContactRepository_AddressMovesToNewContact(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	address := "1555" + uuid.NewString()[:8]
	oldOwner := "cust-" + uuid.NewString()
	newOwner := "cust-" + uuid.NewString()

	require.NoError(t, repo.Save(ctx, domain.ContactIdentity{ContactID: oldOwner, Address: address}))
	require.NoError(t, repo.Save(ctx, domain.ContactIdentity{ContactID: newOwner, Address: address}))

	contacts, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	// The previous owner of the address must be gone, not left pointing at
	// an address that now belongs to someone else.
	assert.Nil(t, findContact(contacts, oldOwner))

	found := findContact(contacts, newOwner)
	require.NotNil(t, found)
	assert.Equal(t, address, found.Address)
}

func findContact(contacts []domain.ContactIdentity, contactID string) *domain.ContactIdentity {
	for i := range contacts {
		if contacts[i].ContactID == contactID {
			return &contacts[i]
		}
	}
	return nil
}
