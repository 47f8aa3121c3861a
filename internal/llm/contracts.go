package llm

import (
	"context"
	"errors"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

// Invoker is one vision-capable model backend. The cascade only depends on
// this interface; providers stay interchangeable.
type Invoker interface {
	// Name identifies the backend for logging and progress messages.
	Name() string
	// Invoke sends the prompt plus encoded pages and returns the raw
	// response text. A refusal is NOT an error here; the cascade detects
	// refusals from the returned text.
	Invoke(ctx context.Context, prompt string, images []entity.EncodedImage) (string, error)
}

// Distinguishable error classes for a model call. Anything else is a
// transport or provider failure.
var (
	ErrRateLimited   = errors.New("rate limited")
	ErrQuotaExceeded = errors.New("quota exceeded")
)
