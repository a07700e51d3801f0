package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mwootten/extractor/internal/providers"
)

const defaultTemperature = 0.3

// Annotator runs extraction requests against an LLM provider and aligns the
// returned extractions back onto the source text.
type Annotator struct {
	registry *providers.Registry
	logger   *slog.Logger
}

// NewAnnotator creates an annotator backed by the given provider registry.
func NewAnnotator(registry *providers.Registry, logger *slog.Logger) *Annotator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Annotator{registry: registry, logger: logger}
}

// Annotate performs one extraction run. The request is read, never mutated.
func (a *Annotator) Annotate(ctx context.Context, req *Request) (*Document, error) {
	modelID := req.ModelID
	if modelID == "" {
		modelID = DefaultModelID
	}

	client, err := a.registry.ResolveModel(modelID)
	if err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	start := time.Now()
	a.logger.Info("starting extraction",
		"request_id", requestID,
		"model", modelID,
		"provider", client.Name(),
		"examples", len(req.Examples),
		"text_len", len(req.TextOrDocuments),
	)

	chat := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Model:          modelID,
		Temperature:    defaultTemperature,
		ResponseFormat: &providers.ResponseFormat{Type: "json_object"},
		RequestID:      requestID,
	}

	res, err := client.Chat(ctx, chat)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	parsed := res.ParsedJSON
	if len(parsed) == 0 {
		parsed, err = providers.ParseStructuredJSON(res.Content)
		if err != nil {
			return nil, fmt.Errorf("model output is not valid JSON: %w", err)
		}
	}

	var doc any
	if err := json.Unmarshal(parsed, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode model output: %w", err)
	}
	if err := ValidateExtractions(doc); err != nil {
		return nil, fmt.Errorf("model output does not match the extraction shape: %w", err)
	}

	var payload struct {
		Extractions []Extraction `json:"extractions"`
	}
	if err := json.Unmarshal(parsed, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode extractions: %w", err)
	}

	aligned := AlignExtractions(req.TextOrDocuments, payload.Extractions)

	a.logger.Info("extraction complete",
		"request_id", requestID,
		"extractions", len(aligned),
		"tokens", res.TotalTokens,
		"duration", time.Since(start),
	)

	return &Document{
		Text:        req.TextOrDocuments,
		DocumentID:  "doc_" + requestID[:8],
		Extractions: aligned,
	}, nil
}
