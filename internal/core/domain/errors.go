package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is an error thrown when a record or its physical bytes are missing
var ErrNotFound = errors.New("not found")

// ErrGone is an error thrown when the target has been soft-deleted
var ErrGone = errors.New("no longer available")

// ErrUnauthorized is an error thrown when the caller is not authenticated
var ErrUnauthorized = errors.New("authentication required")

// ErrForbidden is an error thrown when the caller may not access the resource
var ErrForbidden = errors.New("access denied")

// ErrDuplicateContent is an error thrown when content with the same hash is already registered
var ErrDuplicateContent = errors.New("content already exists")

// ErrIntegrity is an error thrown when on-disk bytes do not match the recorded size
var ErrIntegrity = errors.New("integrity check failed")

// ErrTimeout is an error thrown when a storage operation exceeds its deadline; callers may retry
var ErrTimeout = errors.New("operation timed out")

// ErrStorageWrite is an error thrown when writing bytes to storage fails
var ErrStorageWrite = errors.New("storage write failed")

// ErrStorageRead is an error thrown when reading bytes from storage fails
var ErrStorageRead = errors.New("storage read failed")

// ErrPathViolation is an error thrown when a stored path resolves outside the storage root
var ErrPathViolation = errors.New("path outside storage root")

// ErrNotDeleted is an error thrown when restoring a file that is not soft-deleted
var ErrNotDeleted = errors.New("file is not deleted")

// ErrIllegalTransition is an error thrown for a (status, status) pair absent from the transition table
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrInvalidToken is an error thrown when a signed access token fails validation
var ErrInvalidToken = errors.New("invalid or expired access token")

// ErrRateLimited is an error thrown when the upload counter for a key is exhausted
var ErrRateLimited = errors.New("too many upload attempts")

// ErrValidation is the sentinel wrapped by ValidationError
var ErrValidation = errors.New("validation failed")

// FieldError carries field-level detail for a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field errors. It unwraps to ErrValidation so
// callers can branch with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
