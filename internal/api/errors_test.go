package api

import "testing"

func TestErrorFromResponse(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "string detail wins",
			status: 500,
			body:   `{"detail": "Extraction failed: model timed out"}`,
			want:   "Extraction failed: model timed out",
		},
		{
			name:   "structured detail is serialized",
			status: 422,
			body:   `{"detail": [{"loc": ["body", "examples"], "msg": "field required", "type": "value_error"}]}`,
			want:   `[{"loc":["body","examples"],"msg":"field required","type":"value_error"}]`,
		},
		{
			name:   "json body without detail is serialized whole",
			status: 502,
			body:   `{"error": "upstream unreachable"}`,
			want:   `{"error":"upstream unreachable"}`,
		},
		{
			name:   "non-json body falls back to status text",
			status: 503,
			body:   `<html>Service Unavailable</html>`,
			want:   "HTTP 503: Service Unavailable",
		},
		{
			name:   "empty body falls back to status text",
			status: 404,
			body:   "",
			want:   "HTTP 404: Not Found",
		},
		{
			name:   "null detail falls through to the whole body",
			status: 500,
			body:   `{"detail": null, "code": 7}`,
			want:   `{"code":7,"detail":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errorFromResponse(tt.status, []byte(tt.body))
			if err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.status)
			}
			if err.Detail != tt.want {
				t.Errorf("Detail = %q, want %q", err.Detail, tt.want)
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}
