package giterror

import (
	"errors"
	"fmt"
	"testing"
)

func TestGitHubErrorInspector_IsAuthError(t *testing.T) {
	inspector := NewInspector()

	authErrors := []string{
		"non-200 OK status code: 401 Unauthorized",
		"403 Forbidden",
		"bad credentials",
		"Bad Credentials provided",
		"authentication required",
	}
	for _, msg := range authErrors {
		if !inspector.IsAuthError(errors.New(msg)) {
			t.Errorf("expected %q to be an auth error", msg)
		}
	}

	if inspector.IsAuthError(errors.New("some other failure")) {
		t.Error("generic error should not be an auth error")
	}
	if inspector.IsAuthError(nil) {
		t.Error("nil should not be an auth error")
	}
}

func TestGitHubErrorInspector_IsNotFoundError(t *testing.T) {
	inspector := NewInspector()

	notFoundErrors := []string{
		"404 Not Found",
		"Could not resolve to a User with the login of 'ghost-user'",
		"Could not resolve to a Repository",
		"resource not found",
	}
	for _, msg := range notFoundErrors {
		if !inspector.IsNotFoundError(errors.New(msg)) {
			t.Errorf("expected %q to be a not found error", msg)
		}
	}

	if inspector.IsNotFoundError(errors.New("rate limit exceeded")) {
		t.Error("rate limit error should not be a not found error")
	}
}

func TestGitHubErrorInspector_IsRateLimitError(t *testing.T) {
	inspector := NewInspector()

	rateLimitErrors := []string{
		"API rate limit exceeded for user",
		"429 Too Many Requests",
		"secondary rate limit hit",
	}
	for _, msg := range rateLimitErrors {
		if !inspector.IsRateLimitError(errors.New(msg)) {
			t.Errorf("expected %q to be a rate limit error", msg)
		}
	}

	if inspector.IsRateLimitError(errors.New("401 Unauthorized")) {
		t.Error("auth error should not be a rate limit error")
	}
}

func TestGitHubErrorInspector_IsComplexityError(t *testing.T) {
	inspector := NewInspector()

	complexityErrors := []string{
		"Query has complexity of 12000, which exceeds max complexity of 10000",
		"field cost exceeds maximum",
	}
	for _, msg := range complexityErrors {
		if !inspector.IsComplexityError(errors.New(msg)) {
			t.Errorf("expected %q to be a complexity error", msg)
		}
	}

	if inspector.IsComplexityError(errors.New("404 Not Found")) {
		t.Error("not found error should not be a complexity error")
	}
}

func TestGitHubErrorInspector_IsNetworkError(t *testing.T) {
	inspector := NewInspector()

	networkErrors := []string{
		"dial tcp 140.82.112.6:443: connection refused",
		"no such host",
		"context deadline exceeded (Client.Timeout exceeded)",
		"TLS handshake failure",
		"network is unreachable",
	}
	for _, msg := range networkErrors {
		if !inspector.IsNetworkError(errors.New(msg)) {
			t.Errorf("expected %q to be a network error", msg)
		}
	}

	if inspector.IsNetworkError(errors.New("bad credentials")) {
		t.Error("auth error should not be a network error")
	}
}

// typedError simulates a library error carrying its own classification.
type typedError struct {
	auth bool
}

func (e *typedError) Error() string { return "request failed" }
func (e *typedError) IsAuthError() bool { return e.auth }

func TestErrorChainInspector_TypedError(t *testing.T) {
	inspector := NewErrorChainInspector(NewInspector())

	// The typed classification wins even though the message says nothing.
	err := fmt.Errorf("fetching profile: %w", &typedError{auth: true})
	if !inspector.IsAuthError(err) {
		t.Error("typed auth error in chain should be detected")
	}

	// A typed error that denies the classification falls back to strings.
	if inspector.IsAuthError(&typedError{auth: false}) {
		t.Error("typed error reporting false should not be an auth error")
	}
}

func TestErrorChainInspector_StringFallback(t *testing.T) {
	inspector := NewErrorChainInspector(NewInspector())

	if !inspector.IsRateLimitError(errors.New("API rate limit exceeded")) {
		t.Error("expected string fallback to detect rate limit error")
	}
	if !inspector.IsNotFoundError(errors.New("Could not resolve to a User")) {
		t.Error("expected string fallback to detect not found error")
	}
	if !inspector.IsNetworkError(errors.New("dial tcp: connection refused")) {
		t.Error("expected string fallback to detect network error")
	}
	if !inspector.IsComplexityError(errors.New("query has complexity of 20000")) {
		t.Error("expected string fallback to detect complexity error")
	}
	if inspector.IsAuthError(nil) {
		t.Error("nil should never classify")
	}
}
