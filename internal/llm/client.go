// Package llm provides chat clients for the providers patternpick can ask
// for pattern suggestions. Clients expose a blocking completion and a
// channel-based streaming completion; the suggestion core consumes the
// streaming form.
package llm

import "context"

// Client is the interface the suggestion cycle depends on.
//
// CompleteWithStreaming returns a content channel of incremental text deltas
// and an error channel. Both channels are closed when the request finishes;
// at most one error is ever sent. The system prompt is passed through
// verbatim - clients never prepend or append their own instructions.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	CompleteWithStreaming(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, <-chan error)
	GetModel() string
	SetModel(model string)
}
