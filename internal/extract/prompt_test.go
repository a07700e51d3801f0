package extract

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("few-shot format", func(t *testing.T) {
		prompt, err := BuildPrompt(DemoRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(prompt, "Extract characters, emotions, and relationships") {
			t.Error("prompt should open with the prompt description")
		}
		if !strings.Contains(prompt, `Q: ROMEO. But soft!`) {
			t.Error("prompt should include the example text as a question")
		}
		if !strings.Contains(prompt, `"extractions":[`) {
			t.Error("example answers should be serialized JSON")
		}
		if !strings.HasSuffix(prompt, "A:") {
			t.Errorf("prompt should end awaiting the model's answer, got tail %q",
				prompt[len(prompt)-20:])
		}

		// The input text is the final question.
		lastQ := strings.LastIndex(prompt, "Q: ")
		if !strings.Contains(prompt[lastQ:], "Lady Juliet") {
			t.Error("the final question should carry the input text")
		}
	})

	t.Run("no examples", func(t *testing.T) {
		req := &Request{
			PromptDescription: "Extract dates",
			TextOrDocuments:   "Meeting on March 5th",
			ModelID:           DefaultModelID,
		}
		prompt, err := BuildPrompt(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(prompt, "Examples") {
			t.Error("prompt should omit the examples section when none are given")
		}
		if !strings.Contains(prompt, "Q: Meeting on March 5th") {
			t.Error("prompt should still pose the input text")
		}
	})
}
