package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mwootten/extractor/internal/extract"
)

func TestClientSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schema" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title": "ExtractionRequest"}`))
	}))
	defer srv.Close()

	schema, err := NewClient(srv.URL).Schema(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(schema, &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if doc["title"] != "ExtractionRequest" {
		t.Errorf("unexpected schema: %v", doc)
	}
}

func TestClientExtract(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req extract.Request
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("body should be a request: %v", err)
			}
			if req.ModelID != extract.DefaultModelID {
				t.Errorf("expected model_id %q, got %q", extract.DefaultModelID, req.ModelID)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success": true, "result": {"extractions": []}, "message": "Extraction completed successfully"}`))
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL).Extract(context.Background(), extract.NewDefaultRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Success {
			t.Error("expected a successful result")
		}
		if res.Message != "Extraction completed successfully" {
			t.Errorf("unexpected message %q", res.Message)
		}
	})

	t.Run("business failure is a result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success": false, "message": "no provider for model"}`))
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL).Extract(context.Background(), extract.NewDefaultRequest())
		if err != nil {
			t.Fatalf("success=false should not be an error, got %v", err)
		}
		if res.Success || res.Message != "no provider for model" {
			t.Errorf("unexpected result %+v", res)
		}
	})

	t.Run("validation error surfaces the detail array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail": [{"loc": ["body", "examples"], "msg": "field required", "type": "value_error"}]}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Extract(context.Background(), extract.NewDefaultRequest())
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected an APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("StatusCode = %d, want 422", apiErr.StatusCode)
		}
		if !strings.Contains(apiErr.Detail, "field required") {
			t.Errorf("detail should carry the validation message, got %q", apiErr.Detail)
		}
	})

	t.Run("connection refused is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing is listening anymore

		_, err := NewClient(srv.URL).Extract(context.Background(), extract.NewDefaultRequest())
		if err == nil {
			t.Fatal("expected a transport error")
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			t.Error("transport failures should not be APIErrors")
		}
		if !strings.Contains(err.Error(), "request failed") {
			t.Errorf("expected request failed wrapping, got %q", err)
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := NewClient(srv.URL).Extract(ctx, extract.NewDefaultRequest()); err == nil {
			t.Fatal("expected an error from a cancelled context")
		}
	})
}
