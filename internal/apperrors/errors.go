package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller's role does not permit the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates a missing or rejected session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrTransport indicates the backend could not be reached.
var ErrTransport = errors.New("backend unreachable")

// ErrRemote indicates the backend answered with an unexpected non-2xx status.
var ErrRemote = errors.New("backend error")

// ErrStaleResponse is returned when a response arrives for a workspace that is no longer selected.
var ErrStaleResponse = errors.New("stale response discarded")

// ErrFlushInProgress is returned when a flush is requested while another is outstanding.
var ErrFlushInProgress = errors.New("flush already in progress")

// ErrLimitReached indicates a workspace or member ceiling was hit.
var ErrLimitReached = errors.New("limit reached")

// ErrConfirmationRequired is returned by destructive actions invoked without explicit confirmation.
var ErrConfirmationRequired = errors.New("confirmation required")

// ErrNoSelection indicates an operation needs a selected workspace and there is none.
var ErrNoSelection = errors.New("no workspace selected")

// AppError carries an HTTP status alongside a message and an optional cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError wraps ErrValidation with a field-level message.
func NewValidationError(message string) error {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewForbiddenError wraps ErrForbidden with the name of the missing capability.
func NewForbiddenError(message string) error {
	return &AppError{Code: http.StatusForbidden, Message: message, Err: ErrForbidden}
}

// NewLimitError wraps ErrLimitReached.
func NewLimitError(message string) error {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrLimitReached}
}

// RemoteError describes a non-2xx answer from the workspace backend.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code onto the error taxonomy so callers can use errors.Is.
func (e *RemoteError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound, http.StatusGone:
		return ErrNotFound
	case http.StatusConflict:
		return ErrDuplicate
	default:
		return ErrRemote
	}
}
