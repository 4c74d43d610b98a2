package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/lorrc/chat-relay-backend/internal/adapters/primary/http/middleware"
	apperrors "github.com/lorrc/chat-relay-backend/internal/core/errors"
)

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	return mw.GetRequestID(ctx)
}

// ErrorResponse is the standard JSON error response format
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler with the given logger
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle processes an error and writes the appropriate HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	requestID := GetRequestID(r.Context())

	// Check for AppError first (our custom error type)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		h.logError(r, appErr.StatusCode, appErr.Err, requestID)
		h.writeErrorResponse(w, appErr.StatusCode, ErrorResponse{
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		})
		return
	}

	statusCode, response := h.mapDomainError(err)
	h.logError(r, statusCode, err, requestID)
	h.writeErrorResponse(w, statusCode, response)
}

// mapDomainError converts domain errors to HTTP status codes and responses
func (h *ErrorHandler) mapDomainError(err error) (int, ErrorResponse) {
	switch {
	// Webhook verification
	case errors.Is(err, apperrors.ErrVerificationMissing):
		return http.StatusBadRequest, ErrorResponse{
			Error: "Verification parameters are missing",
			Code:  "VERIFICATION_MISSING",
		}
	case errors.Is(err, apperrors.ErrVerificationFailed):
		return http.StatusForbidden, ErrorResponse{
			Error: "Verification token mismatch",
			Code:  "VERIFICATION_FAILED",
		}
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{
			Error: "You do not have permission to perform this action",
			Code:  "FORBIDDEN",
		}

	// Not Found errors
	case errors.Is(err, apperrors.ErrUnknownObject):
		return http.StatusNotFound, ErrorResponse{
			Error: "Unknown webhook object type",
			Code:  "UNKNOWN_OBJECT",
		}
	case errors.Is(err, apperrors.ErrContactNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error: "Contact not found",
			Code:  "CONTACT_NOT_FOUND",
		}

	// Validation errors
	case errors.Is(err, apperrors.ErrContactIDRequired),
		errors.Is(err, apperrors.ErrTextRequired),
		errors.Is(err, apperrors.ErrRecipientsRequired),
		errors.Is(err, apperrors.ErrHistoryRequired),
		errors.Is(err, apperrors.ErrAddressRequired),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		}

	// Missing collaborator configuration
	case errors.Is(err, apperrors.ErrSenderNotConfigured),
		errors.Is(err, apperrors.ErrAssistantNotConfigured):
		return http.StatusServiceUnavailable, ErrorResponse{
			Error: err.Error(),
			Code:  "NOT_CONFIGURED",
		}

	// Rate limiting
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, ErrorResponse{
			Error: "Too many requests. Please try again later.",
			Code:  "RATE_LIMITED",
		}

	// Default to internal server error
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  "INTERNAL_ERROR",
		}
	}
}

// logError logs the error with appropriate context
func (h *ErrorHandler) logError(r *http.Request, statusCode int, err error, requestID string) {
	logAttrs := []any{
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", statusCode,
		"error", err.Error(),
	}

	switch {
	case statusCode >= 500:
		h.logger.Error("server error", logAttrs...)
	case statusCode >= 400:
		h.logger.Warn("client error", logAttrs...)
	default:
		h.logger.Info("request error", logAttrs...)
	}
}

// writeErrorResponse writes a JSON error response
func (h *ErrorHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, response ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}
