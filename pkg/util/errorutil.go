package util

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Error codes for the domain taxonomy. Callers branch on the code, never on
// transport status.
const (
	CodeInvalidArgument     = "INVALID_ARGUMENT"
	CodeUpstreamRejected    = "UPSTREAM_REJECTED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeConflict            = "CONFLICT"
	CodeNotFound            = "NOT_FOUND"
	CodeStorageError        = "STORAGE_ERROR"
	CodeInternalError       = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may safely retry the operation.
func (e *DomainError) Retryable() bool {
	return e.Code == CodeUpstreamUnavailable || e.Code == CodeStorageError
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details}
}

// NewInvalidArgument reports a missing or malformed required field.
func NewInvalidArgument(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidArgument, message, details)
}

// NewUpstreamRejected reports that the identity provider declined the code.
func NewUpstreamRejected(message string) error {
	return NewDomainError(CodeUpstreamRejected, message, nil)
}

// NewUpstreamUnavailable reports a transient transport failure reaching the
// identity provider.
func NewUpstreamUnavailable(detail string, err error) error {
	return &DomainError{Code: CodeUpstreamUnavailable, Message: detail, Err: err}
}

// NewConflict reports a duplicate primary key.
func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, details)
}

// NewNotFound signals a valid negative lookup result.
func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewStorageError wraps a persistence failure.
func NewStorageError(detail string, err error) error {
	return &DomainError{Code: CodeStorageError, Message: detail, Err: err}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) error {
	return &DomainError{Code: CodeInternalError, Message: "internal server error", Err: err}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewDomainError(CodeNotFound, "resource not found", nil)
	}
	return &DomainError{Code: CodeInternalError, Message: "internal server error", Err: err}
}

// IsCode reports whether err is a DomainError with the given code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
