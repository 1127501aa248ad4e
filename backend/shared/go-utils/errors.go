// backend/shared/go-utils/errors.go
package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")
	ErrNoRowsUpdated      = errors.New("no_rows_updated")

	// Unique constraints on slugs / flat page urls / usernames
	ErrDuplicateSlug     = errors.New("duplicate_slug")
	ErrDuplicateURL      = errors.New("duplicate_url")
	ErrDuplicateUsername = errors.New("duplicate_username")

	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidChoice      = errors.New("invalid_choice")

	// For external service failures (e.g. SendGrid)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}

// NotFound, BadRequest and Internal build the AppErrors services return most often.
func NotFound(msg string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: msg}
}

func BadRequest(msg string, err error) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeValidation, Message: msg, Err: err}
}

func Internal(msg string, err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Code: ErrCodeInternal, Message: msg, Err: err}
}
