// Copyright 2025 GitPulse HQ
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	pulseerrors "github.com/gitpulsehq/gitpulse/internal/errors"
	"github.com/gitpulsehq/gitpulse/internal/giterror"
)

// RetryConfig configures the retry behavior for API calls
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int
	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration
	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration
	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64
	// WaitOnRateLimit controls whether rate limit errors are retried after
	// a backoff. When false they surface immediately.
	WaitOnRateLimit bool
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
		WaitOnRateLimit:   true,
	}
}

// RetryClient wraps a GitHub client with automatic retry logic for
// rate limits and transient network errors using exponential backoff.
type RetryClient struct {
	client    Client
	config    *RetryConfig
	inspector giterror.Inspector
}

// NewRetryClient creates a new RetryClient with the given configuration
func NewRetryClient(client Client, config *RetryConfig) Client {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &RetryClient{
		client:    client,
		config:    config,
		inspector: giterror.NewInspector(),
	}
}

// GetUserInfo implements the Client interface with retry logic
func (r *RetryClient) GetUserInfo(ctx context.Context, login string) (*UserInfo, error) {
	var info *UserInfo
	err := r.do(ctx, func() error {
		var err error
		info, err = r.client.GetUserInfo(ctx, login)
		return err
	})
	return info, err
}

// FetchRepositoryLanguages implements the Client interface with retry logic
func (r *RetryClient) FetchRepositoryLanguages(ctx context.Context, login string, opts FetchOptions) (*LanguagePage, error) {
	var page *LanguagePage
	err := r.do(ctx, func() error {
		var err error
		page, err = r.client.FetchRepositoryLanguages(ctx, login, opts)
		return err
	})
	return page, err
}

// FetchContributionCalendar implements the Client interface with retry logic
func (r *RetryClient) FetchContributionCalendar(ctx context.Context, login string, from, to time.Time) (*ContributionCalendar, error) {
	var calendar *ContributionCalendar
	err := r.do(ctx, func() error {
		var err error
		calendar, err = r.client.FetchContributionCalendar(ctx, login, from, to)
		return err
	})
	return calendar, err
}

// do runs op with retry on retryable errors, honoring context cancellation.
func (r *RetryClient) do(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry on non-retryable errors
		if !r.shouldRetry(err) {
			return err
		}

		// Don't retry if context is cancelled
		if ctx.Err() != nil {
			return ctx.Err()
		}

		backoff := r.calculateBackoff(attempt)

		if r.isRateLimit(err) {
			fmt.Fprintf(os.Stderr, "\nRate limit hit. Waiting %v before retry (attempt %d/%d)...\n",
				backoff, attempt+1, r.config.MaxRetries)
		} else {
			fmt.Fprintf(os.Stderr, "\nNetwork error. Retrying in %v (attempt %d/%d)...\n",
				backoff, attempt+1, r.config.MaxRetries)
		}

		// Wait with context cancellation support
		select {
		case <-time.After(backoff):
			// Continue to next retry
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("failed after %d retries: %w", r.config.MaxRetries, lastErr)
}

// shouldRetry determines if an error is retryable. The wrapped client
// maps failures onto sentinel errors and replaces the transport's
// message text, so the sentinels are checked before falling back to
// string classification of raw errors.
func (r *RetryClient) shouldRetry(err error) bool {
	// Retry on rate limit errors unless configured to fail fast
	if r.isRateLimit(err) {
		return r.config.WaitOnRateLimit
	}

	// Retry on network errors
	if errors.Is(err, pulseerrors.ErrNetworkFailure) || r.inspector.IsNetworkError(err) {
		return true
	}

	// Don't retry on other errors (auth, not found, etc.)
	return false
}

// isRateLimit matches both sentinel-wrapped and raw rate limit errors.
func (r *RetryClient) isRateLimit(err error) bool {
	return errors.Is(err, pulseerrors.ErrRateLimit) || r.inspector.IsRateLimitError(err)
}

// calculateBackoff calculates the backoff duration for the given attempt
func (r *RetryClient) calculateBackoff(attempt int) time.Duration {
	// Calculate exponential backoff
	backoff := float64(r.config.InitialBackoff) * math.Pow(r.config.BackoffMultiplier, float64(attempt))

	// Apply max backoff limit
	if backoff > float64(r.config.MaxBackoff) {
		backoff = float64(r.config.MaxBackoff)
	}

	// Add jitter (±10%) to prevent thundering herd
	jitter := backoff * 0.1 * (2*float64(time.Now().UnixNano()%100)/100 - 1)
	backoff += jitter

	return time.Duration(backoff)
}
