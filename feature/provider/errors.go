package provider

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuth is returned when a provider credential cannot be obtained.
	ErrAuth = errors.New("provider authentication failed")
	// ErrProvider is returned for transport failures, timeouts, unexpected
	// status codes and malformed payloads.
	ErrProvider = errors.New("provider request failed")
)

// StatusError is returned when the provider answers with an unexpected status code.
// It matches ErrProvider with errors.Is.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d for %s %s", e.StatusCode, e.Method, e.Path)
}

// Is makes errors.Is(err, ErrProvider) true for every StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrProvider
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 StatusError.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}
