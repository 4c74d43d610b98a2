package http_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/lorrc/chat-relay-backend/internal/adapters/primary/http"
	apperrors "github.com/lorrc/chat-relay-backend/internal/core/errors"
	"github.com/lorrc/chat-relay-backend/internal/core/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newWebhookHandler(ingress *mocks.MockIngressService) *httpadapter.WebhookHandler {
	logger := testLogger()
	return httpadapter.NewWebhookHandler(ingress, httpadapter.NewErrorHandler(logger), logger)
}

func TestWebhookHandler_HandleVerification(t *testing.T) {
	t.Run("echoes challenge on success", func(t *testing.T) {
		ingress := mocks.NewMockIngressService()
		ingress.On("VerifyChallenge", "subscribe", "secret", "12345").Return("12345", nil)

		handler := newWebhookHandler(ingress)

		req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=secret&hub.challenge=12345", nil)
		rec := httptest.NewRecorder()
		handler.HandleVerification(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
		assert.Equal(t, "12345", rec.Body.String())
	})

	t.Run("accepts bare parameter names", func(t *testing.T) {
		ingress := mocks.NewMockIngressService()
		ingress.On("VerifyChallenge", "subscribe", "secret", "12345").Return("12345", nil)

		handler := newWebhookHandler(ingress)

		req := httptest.NewRequest(http.MethodGet, "/webhook?mode=subscribe&verify_token=secret&challenge=12345", nil)
		rec := httptest.NewRecorder()
		handler.HandleVerification(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "12345", rec.Body.String())
	})

	t.Run("token mismatch is forbidden", func(t *testing.T) {
		ingress := mocks.NewMockIngressService()
		ingress.On("VerifyChallenge", "subscribe", "wrong", "12345").Return("", apperrors.ErrVerificationFailed)

		handler := newWebhookHandler(ingress)

		req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
		rec := httptest.NewRecorder()
		handler.HandleVerification(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "VERIFICATION_FAILED")
	})

	t.Run("missing parameters is a bad request", func(t *testing.T) {
		ingress := mocks.NewMockIngressService()
		ingress.On("VerifyChallenge", "", "", "").Return("", apperrors.ErrVerificationMissing)

		handler := newWebhookHandler(ingress)

		req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
		rec := httptest.NewRecorder()
		handler.HandleVerification(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWebhookHandler_HandleDelivery(t *testing.T) {
	t.Run("acks a processed delivery", func(t *testing.T) {
		ingress := mocks.NewMockIngressService()
		ingress.On("ProcessDelivery", mock.Anything, mock.Anything).Return(nil)

		handler := newWebhookHandler(ingress)

		body := `{"object":"whatsapp_business_account","entry":[]}`
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.HandleDelivery(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		ingress.AssertExpectations(t)
	})

	t.Run("wrong object tag is not found", func(t *testing.T) {
		ingress := mocks.NewMockIngressService()
		ingress.On("ProcessDelivery", mock.Anything, mock.Anything).Return(apperrors.ErrUnknownObject)

		handler := newWebhookHandler(ingress)

		body := `{"object":"instagram","entry":[]}`
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.HandleDelivery(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		ingress := mocks.NewMockIngressService()
		handler := newWebhookHandler(ingress)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.HandleDelivery(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		ingress.AssertNotCalled(t, "ProcessDelivery")
	})
}
