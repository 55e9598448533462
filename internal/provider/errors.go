// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"fmt"
	"net/http"
)

// AuthenticationError reports a missing or rejected API key. The provider
// response body is preserved verbatim.
type AuthenticationError struct {
	Provider string
	Message  string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: authentication failed: %s", e.Provider, e.Message)
}

// RateLimitError reports provider throttling. The caller reports it and
// lets the user retry manually; no automatic backoff is attempted.
type RateLimitError struct {
	Provider string
	Message  string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited: %s", e.Provider, e.Message)
}

// NetworkError reports a connectivity failure, a timeout, or an HTTP
// status outside the auth/throttle classes.
type NetworkError struct {
	Provider string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// classifyStatus maps a non-2xx provider response onto the error taxonomy.
func classifyStatus(providerName string, status int, body []byte) error {
	msg := string(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthenticationError{Provider: providerName, Message: msg}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Provider: providerName, Message: msg}
	default:
		return &NetworkError{Provider: providerName, Err: fmt.Errorf("HTTP %d: %s", status, msg)}
	}
}
