package extract

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// requestSchemaJSON is the canonical JSON Schema for Request. It is served
// verbatim on /schema so clients can drive schema-based form rendering, and
// it backs server-side validation of incoming extraction requests.
const requestSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "ExtractionRequest",
  "type": "object",
  "description": "Request for structured information extraction from text.",
  "properties": {
    "prompt_description": {
      "type": "string",
      "title": "Prompt Description",
      "description": "Description of what to extract and how"
    },
    "examples": {
      "type": "array",
      "title": "Examples",
      "description": "Example text-extraction pairs for few-shot learning",
      "items": {"$ref": "#/$defs/Example"}
    },
    "text_or_documents": {
      "type": "string",
      "title": "Text Or Documents",
      "description": "The text or documents to extract information from"
    },
    "model_id": {
      "type": "string",
      "title": "Model Id",
      "description": "The model ID to use for extraction (e.g., 'gemini-2.5-flash')"
    }
  },
  "required": ["prompt_description", "examples", "text_or_documents", "model_id"],
  "$defs": {
    "Example": {
      "type": "object",
      "title": "Example",
      "properties": {
        "text": {
          "type": "string",
          "title": "Text",
          "description": "The example text"
        },
        "extractions": {
          "type": "array",
          "title": "Extractions",
          "description": "List of extractions from the example",
          "items": {"$ref": "#/$defs/Extraction"}
        }
      },
      "required": ["text", "extractions"]
    },
    "Extraction": {
      "type": "object",
      "title": "Extraction",
      "properties": {
        "extraction_class": {
          "type": "string",
          "title": "Extraction Class",
          "description": "The class/category of the extraction"
        },
        "extraction_text": {
          "type": "string",
          "title": "Extraction Text",
          "description": "The extracted text"
        },
        "attributes": {
          "type": "object",
          "title": "Attributes",
          "description": "Additional attributes for the extraction"
        }
      },
      "required": ["extraction_class", "extraction_text"]
    }
  }
}`

// extractionsSchemaJSON validates the model's structured output before it
// is aligned into a Document.
const extractionsSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "extractions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "extraction_class": {"type": "string"},
          "extraction_text": {"type": "string"},
          "attributes": {"type": "object"},
          "description": {"type": "string"}
        },
        "required": ["extraction_class", "extraction_text"]
      }
    }
  },
  "required": ["extractions"]
}`

var (
	requestSchema     = mustCompile("request.json", requestSchemaJSON)
	extractionsSchema = mustCompile("extractions.json", extractionsSchemaJSON)
)

func mustCompile(name, doc string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(doc)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(name)
}

// RequestSchema returns the JSON Schema document describing Request.
func RequestSchema() json.RawMessage {
	return json.RawMessage(requestSchemaJSON)
}

// ValidateRequest checks a decoded request document against the schema.
// doc must be the result of unmarshaling into any (map/slice/etc).
func ValidateRequest(doc any) error {
	return requestSchema.Validate(doc)
}

// ValidateExtractions checks the model's structured output shape.
func ValidateExtractions(doc any) error {
	return extractionsSchema.Validate(doc)
}

// ValidationDetail is one entry of the detail array returned with 422
// responses. The shape mirrors common Python API frameworks so existing
// frontends keep working against this server.
type ValidationDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ValidationDetails flattens a schema validation error into detail entries,
// one per leaf cause.
func ValidationDetails(err error) []ValidationDetail {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []ValidationDetail{{Loc: []any{"body"}, Msg: err.Error(), Type: "value_error"}}
	}

	var details []ValidationDetail
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			details = append(details, ValidationDetail{
				Loc:  locFromPointer(e.InstanceLocation),
				Msg:  e.Message,
				Type: "value_error",
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return details
}

// locFromPointer converts a JSON pointer like "/examples/0/text" into a
// location path, with numeric segments as integers.
func locFromPointer(ptr string) []any {
	loc := []any{"body"}
	for _, seg := range strings.Split(ptr, "/") {
		if seg == "" {
			continue
		}
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		if n, err := strconv.Atoi(seg); err == nil {
			loc = append(loc, n)
		} else {
			loc = append(loc, seg)
		}
	}
	return loc
}
