package suggest

import (
	"context"
	"strings"

	"patternpick/internal/logging"
)

// Consume drains a streaming completion into a single response string.
// Chunks are appended in arrival order; onChunk (optional) observes each chunk
// after it is recorded, and a panicking observer is logged and ignored rather
// than poisoning the stream. A transport error or context cancellation aborts
// consumption and is returned to the caller.
//
// Both channels are expected to be closed by the producer; end of stream is
// both channels closed with no error delivered.
func Consume(ctx context.Context, content <-chan string, errs <-chan error, onChunk func(string)) (string, error) {
	var sb strings.Builder
	for content != nil || errs != nil {
		select {
		case chunk, ok := <-content:
			if !ok {
				content = nil
				continue
			}
			sb.WriteString(chunk)
			notify(onChunk, chunk)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return "", err
			}
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return sb.String(), nil
}

func notify(onChunk func(string), chunk string) {
	if onChunk == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logging.SuggestWarn("chunk observer panicked: %v", r)
		}
	}()
	onChunk(chunk)
}
