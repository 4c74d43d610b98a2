package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/lorrc/chat-relay-backend/internal/adapters/primary/http"
	"github.com/lorrc/chat-relay-backend/internal/core/domain"
	"github.com/lorrc/chat-relay-backend/internal/core/mocks"
	"github.com/lorrc/chat-relay-backend/internal/core/services"
)

func newContactHandler(resolver *mocks.MockIdentityResolver, seed []domain.ContactIdentity) *httpadapter.ContactHandler {
	logger := testLogger()
	contacts := services.NewContactService(resolver, nil, seed, logger)
	return httpadapter.NewContactHandler(contacts, httpadapter.NewErrorHandler(logger), logger)
}

func TestContactHandler_HandleCreateContact(t *testing.T) {
	t.Run("created contact is returned with its normalized address", func(t *testing.T) {
		resolver := mocks.NewMockIdentityResolver()
		resolver.On("Register", "cust-1", "15550001111").Return()

		handler := newContactHandler(resolver, nil)

		body := `{"contactId":"cust-1","address":"+1 (555) 000-1111","name":"Ada"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.HandleCreateContact(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"contactId":"cust-1"`)
		assert.Contains(t, rec.Body.String(), `"address":"15550001111"`)
		resolver.AssertExpectations(t)
	})

	t.Run("missing address is a bad request", func(t *testing.T) {
		handler := newContactHandler(mocks.NewMockIdentityResolver(), nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", strings.NewReader(`{"contactId":"cust-1"}`))
		rec := httptest.NewRecorder()
		handler.HandleCreateContact(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("id is generated when omitted", func(t *testing.T) {
		resolver := mocks.NewMockIdentityResolver()
		resolver.On("Register", mock.Anything, "15550001111").Return()

		handler := newContactHandler(resolver, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", strings.NewReader(`{"address":"15550001111"}`))
		rec := httptest.NewRecorder()
		handler.HandleCreateContact(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var created domain.ContactIdentity
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ContactID)
	})
}

func TestContactHandler_HandleListContacts(t *testing.T) {
	seed := []domain.ContactIdentity{
		{ContactID: "cust-a", Address: "15550001111", Name: "Ada"},
		{ContactID: "cust-b", Address: "15550002222"},
	}
	handler := newContactHandler(mocks.NewMockIdentityResolver(), seed)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	rec := httptest.NewRecorder()
	handler.HandleListContacts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data  []domain.ContactIdentity `json:"data"`
		Count int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "cust-a", resp.Data[0].ContactID)
}
