// Package editor holds the client-side editing session for an extraction
// request: a single logical value projected into a structured form view and
// a raw JSON text view, plus the submission state machine.
package editor

import (
	"encoding/json"
	"sync"

	"github.com/mwootten/extractor/internal/extract"
)

// Store maintains one logical extraction request and two projections of it:
// the structured value consumed by form-style editors, and a pretty-printed
// JSON text buffer. Neither projection is an independent source of truth;
// every update replaces the logical value and re-derives what follows from
// it. Updates are atomic with respect to observers.
type Store struct {
	mu        sync.Mutex
	value     *extract.Request
	text      string
	parseErr  string
	observers []func()
}

// NewStore creates a store around an initial value and derives the text
// projection from it.
func NewStore(initial *extract.Request) *Store {
	s := &Store{value: initial.Clone()}
	s.text = marshalRequest(s.value)
	return s
}

// marshalRequest pretty-prints a request. Key order is stable because it
// follows the struct field order.
func marshalRequest(req *extract.Request) string {
	out, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}

// Value returns a copy of the current logical value.
func (s *Store) Value() *extract.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value.Clone()
}

// Text returns the JSON text projection. While the text buffer holds
// syntactically invalid input this is the user's in-progress edit, not a
// serialization of the logical value.
func (s *Store) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// ValidationError returns the current parse error message, or "" when the
// text projection last parsed cleanly.
func (s *Store) ValidationError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parseErr
}

// UpdateFromForm replaces the logical value with one produced by the form
// view and re-serializes the text projection.
func (s *Store) UpdateFromForm(req *extract.Request) {
	s.mu.Lock()
	s.value = req.Clone()
	s.text = marshalRequest(s.value)
	s.parseErr = ""
	s.mu.Unlock()
	s.notify()
}

// UpdateFromText accepts arbitrary text from the JSON view. On a successful
// parse the logical value is replaced and any parse error cleared. On
// failure the logical value is frozen at its last parsed state and the raw
// text is kept verbatim so the in-progress edit is not destroyed. Only
// syntax is checked here; field-level validation belongs to the form
// renderer and the server.
func (s *Store) UpdateFromText(raw string) bool {
	var req extract.Request
	err := json.Unmarshal([]byte(raw), &req)

	s.mu.Lock()
	s.text = raw
	if err != nil {
		s.parseErr = "Invalid JSON: " + err.Error()
	} else {
		s.value = &req
		s.parseErr = ""
	}
	s.mu.Unlock()
	s.notify()
	return err == nil
}

// Replace swaps in a new logical value wholesale, re-derives the text
// projection, and clears any parse error. Used by demo injection.
func (s *Store) Replace(req *extract.Request) {
	s.mu.Lock()
	s.value = req.Clone()
	s.text = marshalRequest(s.value)
	s.parseErr = ""
	s.mu.Unlock()
	s.notify()
}

// OnChange registers an observer invoked after every atomic update.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}
