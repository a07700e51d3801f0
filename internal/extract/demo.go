package extract

// DemoRequest returns the fixed example request used to pre-fill the editor:
// character, emotion, and relationship extraction over a Romeo and Juliet
// excerpt with one worked example.
func DemoRequest() *Request {
	return &Request{
		PromptDescription: "Extract characters, emotions, and relationships in order of appearance.",
		Examples: []Example{
			{
				Text: "ROMEO. But soft! What light through yonder window breaks? It is the east, and Juliet is the sun.",
				Extractions: []Extraction{
					{
						ExtractionClass: "character",
						ExtractionText:  "ROMEO",
						Attributes:      map[string]any{"emotional_state": "wonder"},
					},
					{
						ExtractionClass: "emotion",
						ExtractionText:  "But soft!",
						Attributes:      map[string]any{"feeling": "gentle awe"},
					},
					{
						ExtractionClass: "relationship",
						ExtractionText:  "Juliet is the sun",
						Attributes:      map[string]any{"type": "metaphor"},
					},
				},
			},
		},
		TextOrDocuments: "Lady Juliet gazed longingly at the stars, her heart aching for Romeo",
		ModelID:         DefaultModelID,
	}
}
