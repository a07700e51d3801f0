package providers

import (
	"strings"
	"testing"
)

func TestParseStructuredJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "plain object",
			content: `{"extractions": []}`,
			want:    `{"extractions":[]}`,
		},
		{
			name:    "json code fence",
			content: "```json\n{\"extractions\": [{\"extraction_class\": \"c\", \"extraction_text\": \"t\"}]}\n```",
			want:    `{"extractions":[{"extraction_class":"c","extraction_text":"t"}]}`,
		},
		{
			name:    "bare code fence",
			content: "```\n{\"a\": 1}\n```",
			want:    `{"a":1}`,
		},
		{
			name:    "object embedded in prose",
			content: `Here is the result: {"a": 1} as requested.`,
			want:    `{"a":1}`,
		},
		{
			name:    "array output",
			content: `[1, 2, 3]`,
			want:    `[1,2,3]`,
		},
		{
			name:    "empty content",
			content: "   ",
			wantErr: true,
		},
		{
			name:    "no json at all",
			content: "I could not produce any output.",
			wantErr: true,
		},
		{
			name:    "truncated object",
			content: `{"extractions": [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStructuredJSON(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	if got := stripCodeFences("no fences here"); got != "" {
		t.Errorf("non-fenced content should return empty, got %q", got)
	}
	got := stripCodeFences("```json\n{\"a\": 1}\n```")
	if !strings.Contains(got, `"a"`) {
		t.Errorf("fence content lost: %q", got)
	}
}
