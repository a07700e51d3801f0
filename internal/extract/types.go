// Package extract defines the extraction request/response model and the
// annotation engine that turns a prompt, few-shot examples, and a target
// text into structured extractions via an LLM provider.
package extract

import "encoding/json"

// DefaultModelID is used when a request does not specify a model.
const DefaultModelID = "gemini-2.5-flash"

// Extraction is a single piece of structured information pulled from text.
type Extraction struct {
	ExtractionClass string         `json:"extraction_class"`
	ExtractionText  string         `json:"extraction_text"`
	Attributes      map[string]any `json:"attributes,omitempty"`
	Description     *string        `json:"description,omitempty"`
}

// Example pairs a sample text with the extractions a model should produce
// for it. Examples are sent to the model as few-shot demonstrations.
type Example struct {
	Text        string       `json:"text"`
	Extractions []Extraction `json:"extractions"`
}

// Request is the extraction request submitted by clients.
// JSON field order is the canonical serialization order for the editor's
// text projection.
type Request struct {
	PromptDescription string    `json:"prompt_description"`
	Examples          []Example `json:"examples"`
	TextOrDocuments   string    `json:"text_or_documents"`
	ModelID           string    `json:"model_id"`
}

// NewDefaultRequest returns an empty request with the default model set.
func NewDefaultRequest() *Request {
	return &Request{
		Examples: []Example{},
		ModelID:  DefaultModelID,
	}
}

// Clone returns a deep copy of the request.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	out := &Request{
		PromptDescription: r.PromptDescription,
		TextOrDocuments:   r.TextOrDocuments,
		ModelID:           r.ModelID,
	}
	if r.Examples != nil {
		out.Examples = make([]Example, len(r.Examples))
		for i, ex := range r.Examples {
			out.Examples[i] = ex.clone()
		}
	}
	return out
}

func (e Example) clone() Example {
	out := Example{Text: e.Text}
	if e.Extractions != nil {
		out.Extractions = make([]Extraction, len(e.Extractions))
		for i, x := range e.Extractions {
			out.Extractions[i] = x.clone()
		}
	}
	return out
}

func (x Extraction) clone() Extraction {
	out := Extraction{
		ExtractionClass: x.ExtractionClass,
		ExtractionText:  x.ExtractionText,
	}
	if x.Description != nil {
		d := *x.Description
		out.Description = &d
	}
	if x.Attributes != nil {
		out.Attributes = make(map[string]any, len(x.Attributes))
		for k, v := range x.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

// AlignmentStatus values for extractions mapped back onto the source text.
const (
	AlignmentExact = "match_exact"
	AlignmentFuzzy = "match_fuzzy"
)

// CharInterval is a half-open [start, end) byte range in the source text.
type CharInterval struct {
	StartPos int `json:"start_pos"`
	EndPos   int `json:"end_pos"`
}

// AlignedExtraction is an extraction annotated with its position in the
// source text. CharInterval and AlignmentStatus are null when the extracted
// text could not be located.
type AlignedExtraction struct {
	ExtractionClass string         `json:"extraction_class"`
	ExtractionText  string         `json:"extraction_text"`
	Attributes      map[string]any `json:"attributes"`
	CharInterval    *CharInterval  `json:"char_interval"`
	AlignmentStatus string         `json:"alignment_status,omitempty"`
	ExtractionIndex int            `json:"extraction_index"`
	GroupIndex      int            `json:"group_index"`
	Description     *string        `json:"description"`
}

// Document is the annotated result of a successful extraction run.
type Document struct {
	Text        string              `json:"text"`
	DocumentID  string              `json:"document_id"`
	Extractions []AlignedExtraction `json:"extractions"`
}

// Result is the wire response for an extraction call. Result carries the
// annotated document on success; clients treat it as opaque JSON so that
// the display layer does not depend on the document shape.
type Result struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ResultFromDocument wraps an annotated document in a successful Result.
func ResultFromDocument(doc *Document, message string) (*Result, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return &Result{Success: true, Result: raw, Message: message}, nil
}
