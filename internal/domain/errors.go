package domain

import (
	"fmt"
	"net/http"
)

// Error is a conversion failure with an associated HTTP status. Validation
// and auth failures are fatal and produced before any destination work is
// done; per-track match failures are never represented as errors.
type Error struct {
	Status  int
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// NewValidationError reports a malformed or unsupported request field.
func NewValidationError(format string, args ...any) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewAuthError reports a missing or invalid credential for a provider.
func NewAuthError(p Provider) *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Message: fmt.Sprintf("%s not authenticated", p.DisplayName()),
	}
}

// NewUpstreamError reports a failed source track fetch. The wrapped cause is
// kept out of the user-facing message.
func NewUpstreamError(p Provider, cause error) *Error {
	e := &Error{
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Failed to fetch %s tracks", p.DisplayName()),
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// NewUnsupportedDestination reports a destination with no registered
// matcher/materializer pair.
func NewUnsupportedDestination(name string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Target platform '%s' not implemented yet", name),
	}
}
