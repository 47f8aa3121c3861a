package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
)

// ObjectStore fetches raw page bytes by opaque reference. Implementations
// must honor context cancellation.
type ObjectStore interface {
	Fetch(ctx context.Context, ref string) (data []byte, mimeHint string, err error)
}

// RetryingStore wraps an ObjectStore with a per-fetch timeout and a small
// fixed number of retries. Transient failures never surface past this
// wrapper unless the retry budget is spent.
type RetryingStore struct {
	inner   ObjectStore
	logger  *slog.Logger
	timeout time.Duration
	retries int
	delay   time.Duration
}

func NewRetryingStore(inner ObjectStore, logger *slog.Logger) *RetryingStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryingStore{
		inner:   inner,
		logger:  logger,
		timeout: constants.FetchTimeout,
		retries: constants.FetchRetries,
		delay:   constants.FetchRetryDelay,
	}
}

func (s *RetryingStore) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(s.delay):
			}
			s.logger.Warn("storage.fetch.retry", "ref", ref, "attempt", attempt, "error", lastErr)
		}

		fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		data, mime, err := s.inner.Fetch(fetchCtx, ref)
		cancel()

		if err == nil {
			return data, mime, nil
		}
		lastErr = err
		// caller cancellation is not retryable
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
	}
	return nil, "", lastErr
}

// ErrNotFound signals a reference the store does not hold.
var ErrNotFound = errors.New("object not found")
