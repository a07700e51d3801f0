package extract

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"
)

// SystemPrompt frames every extraction call.
const SystemPrompt = "You are an information extraction engine. You identify " +
	"spans of text matching the requested extraction classes and return them " +
	"as structured JSON, copying spans verbatim from the input."

//go:embed prompt.tmpl
var promptText string

var promptTmpl = template.Must(template.New("prompt").Parse(promptText))

// promptExample is an example rendered into the prompt, with its expected
// answer pre-serialized as the JSON the model should emit.
type promptExample struct {
	Text   string
	Answer string
}

type promptData struct {
	PromptDescription string
	Examples          []promptExample
	Text              string
}

// BuildPrompt renders the few-shot user prompt for a request.
func BuildPrompt(req *Request) (string, error) {
	data := promptData{
		PromptDescription: req.PromptDescription,
		Text:              req.TextOrDocuments,
	}
	for i, ex := range req.Examples {
		answer, err := json.Marshal(struct {
			Extractions []Extraction `json:"extractions"`
		}{Extractions: ex.Extractions})
		if err != nil {
			return "", fmt.Errorf("failed to serialize example %d: %w", i, err)
		}
		data.Examples = append(data.Examples, promptExample{
			Text:   ex.Text,
			Answer: string(answer),
		})
	}

	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}
