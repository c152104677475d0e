// Package completion wraps the single-shot text-generation call the rewrite
// and summary pipelines depend on, plus the recovery of a JSON object from
// the model's free-form reply.
package completion

import (
	"context"
)

// Client issues exactly one completion request and returns the raw model
// output. Implementations must not retry and must honor ctx cancellation.
type Client interface {
	Complete(ctx context.Context, prompt string, maxTokens int64) (string, error)
}
