package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/portfolio/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Asset errors
	case errors.Is(err, domain.ErrAssetsNotConfigured):
		return http.StatusServiceUnavailable, "ASSETS_NOT_CONFIGURED", message
	case errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound, "ASSET_NOT_FOUND", message
	case errors.Is(err, domain.ErrInvalidAssetKey):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Contribution errors
	case errors.Is(err, domain.ErrContributionsDisabled):
		return http.StatusNotFound, "CONTRIBUTIONS_DISABLED", message
	case errors.Is(err, domain.ErrContributionsUnavailable):
		return http.StatusServiceUnavailable, "CONTRIBUTIONS_UNAVAILABLE", message

	// Theme errors
	case errors.Is(err, domain.ErrInvalidTheme):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
