package suggest

import (
	"context"
	"errors"
	"sync"

	"patternpick/internal/logging"
)

// State is the controller's suggestion lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrEmptyInput is returned by Suggest when the input is empty; no request is
// issued and no state changes.
var ErrEmptyInput = errors.New("suggest: empty input")

// ErrSuperseded is returned to a Suggest caller whose request finished after a
// newer one started. The stale result is discarded and published state is
// untouched.
var ErrSuperseded = errors.New("suggest: request superseded")

// StreamClient is the slice of the LLM client the controller needs.
type StreamClient interface {
	CompleteWithStreaming(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, <-chan error)
}

// Catalog supplies the known pattern names for prompt building and
// membership filtering. Both are taken from the same snapshot per request.
type Catalog interface {
	Names() []string
}

// Controller owns the suggestion request lifecycle and the current selection.
// All methods are safe for concurrent use. Concurrent requests race freely;
// only the newest one may publish results (last request wins).
type Controller struct {
	client  StreamClient
	catalog Catalog
	idCap   int

	mu         sync.Mutex
	state      State
	busy       bool
	current    []string
	selected   string
	generation uint64
	onLoad     func(name string)
}

// NewController builds a controller in StateIdle. identifierCap <= 0 selects
// DefaultIdentifierCap.
func NewController(client StreamClient, catalog Catalog, identifierCap int) *Controller {
	if identifierCap <= 0 {
		identifierCap = DefaultIdentifierCap
	}
	return &Controller{
		client:  client,
		catalog: catalog,
		idCap:   identifierCap,
		state:   StateIdle,
		current: []string{},
	}
}

// OnLoad registers the callback fired when the selection changes to a new
// pattern. It is invoked outside the controller's lock.
func (c *Controller) OnLoad(fn func(name string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onLoad = fn
}

// Suggest runs one full request cycle: build prompt, stream, validate,
// publish. onChunk (optional) observes raw chunks as they arrive. An empty
// validated list is still a successful outcome. A request started after this
// one silently wins: this call then returns ErrSuperseded and publishes
// nothing.
func (c *Controller) Suggest(ctx context.Context, input string, onChunk func(string)) ([]string, error) {
	if input == "" {
		return nil, ErrEmptyInput
	}

	names := c.catalog.Names()

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = StateRequesting
	c.busy = true
	c.current = []string{}
	c.mu.Unlock()

	logging.Suggest("request %d: %d identifiers, input %d bytes", gen, len(names), len(input))

	prompt := BuildPromptWithCap(input, names, c.idCap)
	content, errs := c.client.CompleteWithStreaming(ctx, prompt.SystemText, prompt.UserText)
	raw, err := Consume(ctx, content, errs, onChunk)
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.generation {
			return nil, ErrSuperseded
		}
		logging.SuggestWarn("request %d failed: %v", gen, err)
		c.state = StateFailed
		c.busy = false
		c.current = []string{}
		return nil, err
	}

	result := Validate(raw, KnownSet(names))

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil, ErrSuperseded
	}
	c.state = StateReady
	c.busy = false
	c.current = result
	logging.Suggest("request %d: %d suggestions", gen, len(result))
	return result, nil
}

// SetSelected records the chosen pattern. Selecting the already-selected
// pattern is a no-op and does not re-fire the load callback; the return value
// reports whether the selection changed.
func (c *Controller) SetSelected(name string) bool {
	c.mu.Lock()
	if name == c.selected {
		c.mu.Unlock()
		return false
	}
	c.selected = name
	fn := c.onLoad
	c.mu.Unlock()

	if fn != nil {
		fn(name)
	}
	return true
}

// State reports the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a request is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Current returns the last published suggestion list. The returned slice is a
// copy.
func (c *Controller) Current() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.current))
	copy(out, c.current)
	return out
}

// Selected returns the currently selected pattern name, empty if none.
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}
