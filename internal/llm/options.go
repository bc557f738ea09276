package llm

import "time"

type settings struct {
	timeout time.Duration
}

// Option customizes client construction.
type Option func(*settings)

// WithTimeout sets the HTTP client timeout, which also bounds streaming
// requests that carry no context deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

func applyOptions(opts []Option) settings {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	return s
}
