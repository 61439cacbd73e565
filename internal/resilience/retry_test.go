package resilience

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"lumident/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_SucceedsFirstAttempt(t *testing.T) {
	attempts := 0
	result, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "ok", nil
	}, WithInitialDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_FailsOnceThenSucceeds(t *testing.T) {
	attempts := 0
	result, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			return "", &model.RemoteError{StatusCode: http.StatusInternalServerError, Message: "transient"}
		}
		return "ok", nil
	}, WithInitialDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, attempts)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	lastErr := errors.New("network down")
	_, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "", lastErr
	}, WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.ErrorIs(t, err, lastErr, "the last observed error is rethrown")
	assert.Equal(t, 3, attempts, "default budget is 3 total attempts")
}

func TestWithRetry_NoRetryOnClientError(t *testing.T) {
	attempts := 0
	_, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "", &model.RemoteError{StatusCode: http.StatusNotFound, Message: "not found"}
	}, WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 1, attempts, "4xx-class errors are permanent")

	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
}

func TestWithRetry_RetriesServerError(t *testing.T) {
	attempts := 0
	_, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "", &model.RemoteError{StatusCode: http.StatusServiceUnavailable, Message: "overloaded"}
	}, WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 3, attempts, "5xx-class errors are transient")
}

func TestWithRetry_NoRetryOnValidationError(t *testing.T) {
	attempts := 0
	_, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "", &model.ValidationError{EntryID: "e1", Field: "price"}
	}, WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_MaxAttemptsOption(t *testing.T) {
	attempts := 0
	_, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		return "", errors.New("still failing")
	}, WithMaxAttempts(5), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 5, attempts)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	_, err := WithRetry(ctx, func(ctx context.Context) (string, error) {
		attempts++
		cancel()
		return "", errors.New("transient")
	}, WithInitialDelay(time.Minute))

	require.Error(t, err)
	assert.Equal(t, 1, attempts, "cancellation aborts the backoff wait")
}
