package editor

import (
	"context"
	"sync"

	"github.com/mwootten/extractor/internal/extract"
)

// State is the submission lifecycle state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Extractor performs one extraction call. Implemented by api.Client.
type Extractor interface {
	Extract(ctx context.Context, req *extract.Request) (*extract.Result, error)
}

// Controller drives one-shot submissions of the store's current value.
// At most one call is in flight; starting a new submission clears the prior
// outcome. There is no cancellation or fencing: a completed call always
// publishes its outcome, even if the store changed underneath it — the
// last-settled response wins.
type Controller struct {
	mu        sync.Mutex
	store     *Store
	extractor Extractor
	state     State
	result    *extract.Result
	errMsg    string
}

// NewController creates a controller bound to a store and an extractor.
func NewController(store *Store, extractor Extractor) *Controller {
	return &Controller{store: store, extractor: extractor}
}

// Submit serializes the current value and performs one extraction call.
// It is a no-op returning false when no value is present or a submission is
// already in flight. It blocks until the call settles and always leaves the
// submitting state, transitioning to succeeded or failed.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if c.state == StateSubmitting || c.store == nil {
		c.mu.Unlock()
		return false
	}
	req := c.store.Value()
	if req == nil {
		c.mu.Unlock()
		return false
	}
	c.state = StateSubmitting
	c.result = nil
	c.errMsg = ""
	c.mu.Unlock()

	res, err := c.extractor.Extract(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case err != nil:
		c.state = StateFailed
		c.errMsg = err.Error()
	case !res.Success:
		c.state = StateFailed
		c.errMsg = res.Message
		if c.errMsg == "" {
			c.errMsg = "extraction failed"
		}
	default:
		c.state = StateSucceeded
		c.result = res
	}
	return true
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the last successful result, or nil.
func (c *Controller) Result() *extract.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// ErrorMessage returns the displayable message of the last failure, or "".
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Reset clears any settled outcome. An in-flight submission keeps running
// and will still publish its outcome when it settles.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
	c.errMsg = ""
	if c.state != StateSubmitting {
		c.state = StateIdle
	}
}
