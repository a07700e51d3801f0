package extract

import (
	"encoding/json"
	"reflect"
	"testing"
)

func mustDecode(t *testing.T, raw string) any {
	t.Helper()
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("failed to decode test document: %v", err)
	}
	return doc
}

func TestRequestSchema(t *testing.T) {
	var schema map[string]any
	if err := json.Unmarshal(RequestSchema(), &schema); err != nil {
		t.Fatalf("schema document is not valid JSON: %v", err)
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatal("schema should carry a properties object")
	}
	for _, field := range []string{"prompt_description", "examples", "text_or_documents", "model_id"} {
		if _, ok := props[field]; !ok {
			t.Errorf("schema missing property %q", field)
		}
	}
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		raw, err := json.Marshal(DemoRequest())
		if err != nil {
			t.Fatalf("failed to marshal demo request: %v", err)
		}
		if err := ValidateRequest(mustDecode(t, string(raw))); err != nil {
			t.Errorf("demo request should validate: %v", err)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		doc := mustDecode(t, `{"prompt_description": "x", "examples": [], "model_id": "gemini-2.5-flash"}`)
		err := ValidateRequest(doc)
		if err == nil {
			t.Fatal("expected a validation error for missing text_or_documents")
		}
		details := ValidationDetails(err)
		if len(details) == 0 {
			t.Fatal("expected at least one detail entry")
		}
		if details[0].Loc[0] != "body" {
			t.Errorf("detail loc should start with body, got %v", details[0].Loc)
		}
	})

	t.Run("bad nested example", func(t *testing.T) {
		doc := mustDecode(t, `{
			"prompt_description": "x",
			"examples": [{"text": "t", "extractions": [{"extraction_class": 42, "extraction_text": "y"}]}],
			"text_or_documents": "z",
			"model_id": "gemini-2.5-flash"
		}`)
		err := ValidateRequest(doc)
		if err == nil {
			t.Fatal("expected a validation error for a non-string extraction_class")
		}
		details := ValidationDetails(err)
		found := false
		for _, d := range details {
			if reflect.DeepEqual(d.Loc, []any{"body", "examples", 0, "extractions", 0, "extraction_class"}) {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a detail pointing into the nested extraction, got %v", details)
		}
	})
}

func TestValidateExtractions(t *testing.T) {
	t.Run("well-formed output", func(t *testing.T) {
		doc := mustDecode(t, `{"extractions": [{"extraction_class": "c", "extraction_text": "t"}]}`)
		if err := ValidateExtractions(doc); err != nil {
			t.Errorf("expected valid model output, got %v", err)
		}
	})

	t.Run("missing extractions key", func(t *testing.T) {
		if err := ValidateExtractions(mustDecode(t, `{"items": []}`)); err == nil {
			t.Error("expected an error when the extractions key is absent")
		}
	})
}

func TestLocFromPointer(t *testing.T) {
	got := locFromPointer("/examples/0/text")
	want := []any{"body", "examples", 0, "text"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("locFromPointer = %v, want %v", got, want)
	}

	if got := locFromPointer(""); !reflect.DeepEqual(got, []any{"body"}) {
		t.Errorf("root pointer should map to [body], got %v", got)
	}
}
