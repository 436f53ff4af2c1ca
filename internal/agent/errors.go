package agent

import (
	"errors"
	"fmt"
)

// Configuration failures. Fatal, never retried: the same inputs would fail
// the same way on every attempt.
var (
	ErrEmptySecret    = errors.New("signing secret is empty")
	ErrEmptyCanonical = errors.New("canonical input is empty")
	ErrNoCredential   = errors.New("agent credential is not loaded")
)

// APIError is a failure the agent service reported itself. Code and Message
// are the server's values, kept verbatim so callers can tell an invalid
// signature apart from a missing resource.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("agent API status=%d code=%s message=%s", e.Status, e.Code, e.Message)
}

// Retryable reports whether the failure is transient by the service's own
// classification: throttling or a server-side fault.
func (e *APIError) Retryable() bool {
	return e.Status == 429 || e.Status >= 500
}

const (
	transportNetwork  = "network"
	transportProtocol = "protocol"
)

// TransportError covers network-level failures and protocol violations, i.e.
// responses that are not the JSON the service promises.
type TransportError struct {
	Kind string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s error: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func isRetryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Retryable()
	}
	return false
}
