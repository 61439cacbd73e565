package resilience

import (
	"context"
	"errors"
	"time"

	"lumident/internal/model"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultMaxAttempts  = 3
	defaultInitialDelay = time.Second
)

// RetryOption customises WithRetry.
type RetryOption func(*retryConfig)

type retryConfig struct {
	maxAttempts  int
	initialDelay time.Duration
}

// WithMaxAttempts caps the total number of attempts, including the first.
func WithMaxAttempts(attempts int) RetryOption {
	return func(c *retryConfig) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithInitialDelay sets the delay before the first retry. Each later retry
// doubles it.
func WithInitialDelay(delay time.Duration) RetryOption {
	return func(c *retryConfig) {
		if delay > 0 {
			c.initialDelay = delay
		}
	}
}

// WithRetry runs op until it succeeds, the attempt budget is exhausted, or
// the failure is classified as permanent. Delays grow exponentially from the
// initial delay with no jitter. The decorator knows nothing about the
// operation it wraps.
//
// Classification uses the structured status carried by *model.RemoteError:
// 4xx-class responses are permanent, everything else is transient. Entry
// validation failures are permanent as well. Context cancellation aborts
// both the attempt and any pending wait.
func WithRetry[T any](ctx context.Context, op func(context.Context) (T, error), opts ...RetryOption) (T, error) {
	cfg := retryConfig{
		maxAttempts:  defaultMaxAttempts,
		initialDelay: defaultInitialDelay,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = cfg.initialDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = cfg.initialDelay << uint(cfg.maxAttempts)
	policy.MaxElapsedTime = 0

	var result T
	attempt := func() error {
		value, err := op(ctx)
		if err != nil {
			if isPermanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = value
		return nil
	}

	wrapped := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(cfg.maxAttempts-1)), ctx)
	if err := backoff.Retry(attempt, wrapped); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// isPermanent reports whether retrying the failed operation cannot succeed.
func isPermanent(err error) bool {
	var remoteErr *model.RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.IsClientError()
	}
	var validationErr *model.ValidationError
	return errors.As(err, &validationErr)
}
