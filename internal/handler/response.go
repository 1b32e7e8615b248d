package handler

import (
	"errors"
	"net/http"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation = "https://risk-manager.app/errors/validation"
	ErrorTypeNotFound   = "https://risk-manager.app/errors/not-found"
	ErrorTypeConflict   = "https://risk-manager.app/errors/conflict"
	ErrorTypeSync       = "https://risk-manager.app/errors/sync"
	ErrorTypeInternal   = "https://risk-manager.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewSyncError creates a response for a failed call to the remote sync endpoint
func NewSyncError(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadGateway, ProblemDetails{
		Type:     ErrorTypeSync,
		Title:    "Sync Failed",
		Status:   http.StatusBadGateway,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// validationFields maps domain validation errors to the request field they concern
var validationFields = map[error]string{
	domain.ErrNameRequired:         "name",
	domain.ErrNameTooLong:          "name",
	domain.ErrInvalidCapital:       "initialCapital",
	domain.ErrInvalidPercentage:    "percentage",
	domain.ErrInvalidEffectiveDays: "totalEffectiveDays",
	domain.ErrInvalidDate:          "date",
	domain.ErrInvalidDayStatus:     "status",
	domain.ErrInvalidCategory:      "category",
	domain.ErrInvalidSubCategory:   "subCategory",
	domain.ErrInvalidStrategy:      "strategy",
	domain.ErrTickerTooLong:        "ticker",
}

// handleServiceError maps a service error to a problem response.
// Anything unrecognised is logged and reported as an internal error with fallback as detail.
func handleServiceError(c echo.Context, err error, fallback string) error {
	for target, field := range validationFields {
		if errors.Is(err, target) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: field, Message: target.Error()},
			})
		}
	}

	switch {
	case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, "Profile not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		return NewConflictError(c, "Profile already exists")
	case errors.Is(err, domain.ErrSyncInProgress):
		return NewConflictError(c, "A sync for this profile is already in progress")
	case errors.Is(err, domain.ErrSyncDisabled):
		return NewConflictError(c, "Sync is disabled or not configured for this profile")
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(fallback)
	return NewInternalError(c, fallback)
}
