package editor

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mwootten/extractor/internal/extract"
)

// stubExtractor settles every call with a fixed outcome, optionally
// blocking until released.
type stubExtractor struct {
	result  *extract.Result
	err     error
	calls   atomic.Int64
	started chan struct{}
	release chan struct{}
}

func (s *stubExtractor) Extract(ctx context.Context, req *extract.Request) (*extract.Result, error) {
	s.calls.Add(1)
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return s.result, s.err
}

func successResult() *extract.Result {
	return &extract.Result{
		Success: true,
		Result:  json.RawMessage(`{"extractions": [], "document_id": "doc_test"}`),
		Message: "Extraction completed successfully",
	}
}

func TestSubmitSuccess(t *testing.T) {
	stub := &stubExtractor{result: successResult()}
	store := NewStore(extract.NewDefaultRequest())
	ctrl := NewController(store, stub)

	if !ctrl.Submit(context.Background()) {
		t.Fatal("expected submission to start")
	}
	if ctrl.State() != StateSucceeded {
		t.Errorf("expected state succeeded, got %s", ctrl.State())
	}
	if ctrl.Result() == nil {
		t.Fatal("expected a result after success")
	}
	if ctrl.ErrorMessage() != "" {
		t.Errorf("unexpected error message %q", ctrl.ErrorMessage())
	}

	// An empty extraction list is still a success.
	var doc struct {
		Extractions []any `json:"extractions"`
	}
	if err := json.Unmarshal(ctrl.Result().Result, &doc); err != nil {
		t.Fatalf("result payload should be valid JSON: %v", err)
	}
	if len(doc.Extractions) != 0 {
		t.Errorf("expected zero extractions, got %d", len(doc.Extractions))
	}
}

func TestSubmitFailures(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		stub := &stubExtractor{err: errors.New("connection refused")}
		ctrl := NewController(NewStore(extract.NewDefaultRequest()), stub)

		if !ctrl.Submit(context.Background()) {
			t.Fatal("expected submission to start")
		}
		if ctrl.State() != StateFailed {
			t.Errorf("expected state failed, got %s", ctrl.State())
		}
		if ctrl.ErrorMessage() != "connection refused" {
			t.Errorf("expected error message from transport, got %q", ctrl.ErrorMessage())
		}
		if ctrl.Result() != nil {
			t.Error("failed submission should not keep a result")
		}
	})

	t.Run("server reported failure", func(t *testing.T) {
		stub := &stubExtractor{result: &extract.Result{Success: false, Message: "model not available"}}
		ctrl := NewController(NewStore(extract.NewDefaultRequest()), stub)

		ctrl.Submit(context.Background())
		if ctrl.State() != StateFailed {
			t.Errorf("expected state failed, got %s", ctrl.State())
		}
		if ctrl.ErrorMessage() != "model not available" {
			t.Errorf("expected server message, got %q", ctrl.ErrorMessage())
		}
	})

	t.Run("failure with no message", func(t *testing.T) {
		stub := &stubExtractor{result: &extract.Result{Success: false}}
		ctrl := NewController(NewStore(extract.NewDefaultRequest()), stub)

		ctrl.Submit(context.Background())
		if ctrl.ErrorMessage() != "extraction failed" {
			t.Errorf("expected fallback message, got %q", ctrl.ErrorMessage())
		}
	})
}

func TestSubmitReentrancy(t *testing.T) {
	stub := &stubExtractor{
		result:  successResult(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	ctrl := NewController(NewStore(extract.NewDefaultRequest()), stub)

	first := make(chan bool)
	go func() {
		first <- ctrl.Submit(context.Background())
	}()

	<-stub.started
	if ctrl.State() != StateSubmitting {
		t.Errorf("expected state submitting while in flight, got %s", ctrl.State())
	}
	if ctrl.Submit(context.Background()) {
		t.Error("second submit while in flight should be a no-op")
	}

	close(stub.release)
	select {
	case started := <-first:
		if !started {
			t.Error("first submit should report that it ran")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("first submit never settled")
	}

	if got := stub.calls.Load(); got != 1 {
		t.Errorf("expected exactly one extraction call, got %d", got)
	}
	if ctrl.State() != StateSucceeded {
		t.Errorf("expected state succeeded after release, got %s", ctrl.State())
	}
}

func TestSubmitClearsPriorOutcome(t *testing.T) {
	stub := &stubExtractor{err: errors.New("boom")}
	ctrl := NewController(NewStore(extract.NewDefaultRequest()), stub)

	ctrl.Submit(context.Background())
	if ctrl.State() != StateFailed {
		t.Fatalf("setup: expected failed state, got %s", ctrl.State())
	}

	stub.err = nil
	stub.result = successResult()
	ctrl.Submit(context.Background())

	if ctrl.State() != StateSucceeded {
		t.Errorf("expected succeeded after retry, got %s", ctrl.State())
	}
	if ctrl.ErrorMessage() != "" {
		t.Errorf("prior error should be cleared, got %q", ctrl.ErrorMessage())
	}
}

func TestReset(t *testing.T) {
	stub := &stubExtractor{err: errors.New("boom")}
	ctrl := NewController(NewStore(extract.NewDefaultRequest()), stub)

	ctrl.Submit(context.Background())
	ctrl.Reset()

	if ctrl.State() != StateIdle {
		t.Errorf("expected idle after reset, got %s", ctrl.State())
	}
	if ctrl.ErrorMessage() != "" || ctrl.Result() != nil {
		t.Error("reset should clear the settled outcome")
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateIdle:       "idle",
		StateSubmitting: "submitting",
		StateSucceeded:  "succeeded",
		StateFailed:     "failed",
		State(99):       "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
