package internaltypes

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrNoTableAvailable = errors.New("no suitable table available for your party size")
)

// ValidationError is a correctable input problem. Message is safe to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UpstreamError wraps a failed call to the reservation backend.
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
	case e.Body != "":
		return fmt.Sprintf("backend %s: http %d: %s", e.Op, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("backend %s: http %d", e.Op, e.StatusCode)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is lets callers match backend 404 and 401/403 responses against the sentinels.
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}
