package editor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mwootten/extractor/internal/extract"
)

// Service is the server surface a session needs. Implemented by api.Client.
type Service interface {
	Schema(ctx context.Context) (json.RawMessage, error)
	Extract(ctx context.Context, req *extract.Request) (*extract.Result, error)
}

// Session ties together the schema, the store, and the submission
// controller for one editing session.
type Session struct {
	schema     json.RawMessage
	store      *Store
	controller *Controller
}

// NewSession fetches the schema once and initializes the logical value to
// its default shape. A schema fetch failure is terminal: no session (and no
// logical value) exists until the caller retries from scratch.
func NewSession(ctx context.Context, svc Service) (*Session, error) {
	schema, err := svc.Schema(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	store := NewStore(extract.NewDefaultRequest())
	return &Session{
		schema:     schema,
		store:      store,
		controller: NewController(store, svc),
	}, nil
}

// Schema returns the schema document fetched at session start. It is handed
// to form renderers opaque; the session itself does not interpret it.
func (s *Session) Schema() json.RawMessage {
	return s.schema
}

// Store returns the dual-projection value store.
func (s *Session) Store() *Store {
	return s.store
}

// Controller returns the submission controller.
func (s *Session) Controller() *Controller {
	return s.controller
}

// LoadDemo replaces the logical value with the fixed demo request and clears
// any validation error and any settled submission outcome.
func (s *Session) LoadDemo() {
	s.store.Replace(extract.DemoRequest())
	s.controller.Reset()
}
