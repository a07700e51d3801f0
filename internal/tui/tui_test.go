package tui

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mwootten/extractor/internal/editor"
	"github.com/mwootten/extractor/internal/extract"
)

type stubService struct {
	schema json.RawMessage
}

func (s *stubService) Schema(ctx context.Context) (json.RawMessage, error) {
	return s.schema, nil
}

func (s *stubService) Extract(ctx context.Context, req *extract.Request) (*extract.Result, error) {
	return &extract.Result{Success: true, Result: json.RawMessage(`{}`)}, nil
}

func TestSchemaHints(t *testing.T) {
	t.Run("descriptions from the published schema", func(t *testing.T) {
		hints := schemaHints(extract.RequestSchema())
		if hints["prompt_description"] == "" {
			t.Error("expected a hint for prompt_description")
		}
		if hints["model_id"] == "" {
			t.Error("expected a hint for model_id")
		}
	})

	t.Run("malformed schema yields no hints", func(t *testing.T) {
		hints := schemaHints(json.RawMessage(`not json`))
		if len(hints) != 0 {
			t.Errorf("expected no hints, got %v", hints)
		}
	})

	t.Run("properties without descriptions are skipped", func(t *testing.T) {
		hints := schemaHints(json.RawMessage(`{"properties": {"a": {"type": "string"}}}`))
		if _, ok := hints["a"]; ok {
			t.Error("a property with no description should not produce a hint")
		}
	})
}

func TestFormViewShowsSchemaHints(t *testing.T) {
	svc := &stubService{schema: extract.RequestSchema()}
	session, err := editor.NewSession(context.Background(), svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view := New(session).View()
	if !strings.Contains(view, "Description of what to extract and how") {
		t.Error("form view should surface the schema's field descriptions")
	}
}
