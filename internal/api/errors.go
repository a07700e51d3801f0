package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the server with a displayable detail
// message already extracted from the body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

// detailExtractor tries to pull a displayable message out of an error body.
type detailExtractor func(body []byte) (string, bool)

// detailExtractors are tried in order. The server (and the Python frameworks
// this server stays wire-compatible with) returns {"detail": ...} bodies
// where detail may be a string or a structured value; bodies from proxies or
// crashes may be arbitrary JSON or not JSON at all.
var detailExtractors = []detailExtractor{
	stringDetail,
	structuredDetail,
	rawJSONBody,
}

// stringDetail matches {"detail": "message"}.
func stringDetail(body []byte) (string, bool) {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Detail == "" {
		return "", false
	}
	return payload.Detail, true
}

// structuredDetail matches {"detail": <non-string value>} and serializes it.
func structuredDetail(body []byte) (string, bool) {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Detail == nil {
		return "", false
	}
	out, err := json.Marshal(payload.Detail)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// rawJSONBody serializes the whole body, provided it is well-formed JSON.
func rawJSONBody(body []byte) (string, bool) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return "", false
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// errorFromResponse builds an APIError from a non-2xx response, falling back
// to "HTTP <status>: <statusText>" when the body yields nothing displayable.
func errorFromResponse(statusCode int, body []byte) *APIError {
	for _, extract := range detailExtractors {
		if msg, ok := extract(body); ok {
			return &APIError{StatusCode: statusCode, Detail: msg}
		}
	}
	return &APIError{
		StatusCode: statusCode,
		Detail:     fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode)),
	}
}
