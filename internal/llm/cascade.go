package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/common"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

// Cascade tries an ordered list of model backends until one produces a
// usable answer. Cascading to the next candidate is the primary resilience
// mechanism; no model is retried in a loop.
type Cascade struct {
	invokers []Invoker
	logger   *slog.Logger
	backoff  time.Duration
}

func NewCascade(invokers []Invoker, logger *slog.Logger) *Cascade {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cascade{
		invokers: invokers,
		logger:   logger,
		backoff:  2 * time.Second,
	}
}

// Run iterates the backends in priority order and returns the first
// non-refusal response. A refusal triggers one ultra-directive retry
// against the same backend before advancing. When every backend is
// exhausted the last error is surfaced wrapped in ErrAllModelsExhausted.
func (c *Cascade) Run(ctx context.Context, prompt string, images []entity.EncodedImage) (string, error) {
	var lastErr error

	for _, inv := range c.invokers {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		start := time.Now()
		text, err := inv.Invoke(ctx, prompt, images)
		elapsed := time.Since(start).Milliseconds()

		switch {
		case err == nil && !IsRefusal(text):
			c.logger.Info("llm.cascade.ok",
				"model", inv.Name(), "bytes", len(text), "elapsed_ms", elapsed)
			return text, nil

		case err == nil:
			// transport success but the model declined; one directive
			// retry against the same backend, then move on
			c.logger.Warn("llm.cascade.refusal",
				"model", inv.Name(), "bytes", len(text), "elapsed_ms", elapsed)
			retryText, retryErr := inv.Invoke(ctx, BuildDirectivePrompt(), images)
			if retryErr == nil && !IsRefusal(retryText) {
				c.logger.Info("llm.cascade.directive_retry_ok", "model", inv.Name())
				return retryText, nil
			}
			lastErr = fmt.Errorf("model %s refused", inv.Name())

		case errors.Is(err, ErrRateLimited):
			c.logger.Warn("llm.cascade.rate_limited",
				"model", inv.Name(), "backoff_ms", c.backoff.Milliseconds())
			lastErr = err
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.backoff):
			}
			// still advance to the next model after the backoff

		case errors.Is(err, ErrQuotaExceeded):
			c.logger.Warn("llm.cascade.quota_exceeded", "model", inv.Name())
			lastErr = err

		default:
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			c.logger.Warn("llm.cascade.failed",
				"model", inv.Name(), "error", err, "elapsed_ms", elapsed)
			lastErr = err
		}
	}

	if lastErr == nil {
		lastErr = errors.New("no models configured")
	}
	return "", fmt.Errorf("%w: %v", common.ErrAllModelsExhausted, lastErr)
}

// refusalPhrases covers the phrasing the vision endpoints use when they
// decline instead of erroring.
var refusalPhrases = []string{
	"i'm sorry",
	"i am sorry",
	"i can't assist",
	"i cannot assist",
	"i can't help",
	"i cannot help",
	"unable to process",
	"não posso ajudar",
	"não consigo ajudar",
	"desculpe, não posso",
	"as an ai",
}

// IsRefusal reports whether the response is a non-answer: known refusal
// phrasing, or implausibly short for a document transcription with no sign
// of JSON.
func IsRefusal(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	if len(trimmed) < 80 && !strings.Contains(trimmed, "{") {
		return true
	}
	return false
}
