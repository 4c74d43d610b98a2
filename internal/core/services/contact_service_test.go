package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
	apperrors "github.com/lorrc/chat-relay-backend/internal/core/errors"
	"github.com/lorrc/chat-relay-backend/internal/core/mocks"
	"github.com/lorrc/chat-relay-backend/internal/core/services"
)

func TestContactService_CreateContact(t *testing.T) {
	ctx := context.Background()

	t.Run("registers with the resolver and persists", func(t *testing.T) {
		resolver := mocks.NewMockIdentityResolver()
		directory := mocks.NewMockContactDirectory()
		svc := services.NewContactService(resolver, directory, nil, discardLogger())

		resolver.On("Register", "cust-1", "15550001111").Return()
		directory.On("Save", ctx, mock.Anything).Return(nil)

		contact, err := svc.CreateContact(ctx, "cust-1", "+1 (555) 000-1111", "Ada")
		require.NoError(t, err)
		assert.Equal(t, "cust-1", contact.ContactID)
		assert.Equal(t, "15550001111", contact.Address)
		assert.Equal(t, "Ada", contact.Name)

		resolver.AssertExpectations(t)
		directory.AssertExpectations(t)
	})

	t.Run("generates an id when missing", func(t *testing.T) {
		resolver := mocks.NewMockIdentityResolver()
		svc := services.NewContactService(resolver, nil, nil, discardLogger())

		resolver.On("Register", mock.Anything, "15550001111").Return()

		contact, err := svc.CreateContact(ctx, "", "15550001111", "")
		require.NoError(t, err)
		assert.NotEmpty(t, contact.ContactID)
	})

	t.Run("address is required", func(t *testing.T) {
		svc := services.NewContactService(mocks.NewMockIdentityResolver(), nil, nil, discardLogger())

		_, err := svc.CreateContact(ctx, "cust-1", "", "")
		assert.ErrorIs(t, err, apperrors.ErrAddressRequired)
	})

	t.Run("directory failure does not fail the registration", func(t *testing.T) {
		resolver := mocks.NewMockIdentityResolver()
		directory := mocks.NewMockContactDirectory()
		svc := services.NewContactService(resolver, directory, nil, discardLogger())

		resolver.On("Register", "cust-1", "15550001111").Return()
		directory.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := svc.CreateContact(ctx, "cust-1", "15550001111", "")
		require.NoError(t, err)

		contacts, err := svc.ListContacts(ctx)
		require.NoError(t, err)
		assert.Len(t, contacts, 1)
	})
}

func TestContactService_ListContacts(t *testing.T) {
	ctx := context.Background()

	seed := []domain.ContactIdentity{
		{ContactID: "cust-b", Address: "15550002222"},
		{ContactID: "cust-a", Address: "15550001111", Name: "Ada"},
	}
	svc := services.NewContactService(mocks.NewMockIdentityResolver(), nil, seed, discardLogger())

	contacts, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	// Ordered by contact id.
	assert.Equal(t, "cust-a", contacts[0].ContactID)
	assert.Equal(t, "cust-b", contacts[1].ContactID)
}
