// Package api provides the HTTP client for the extractor server, the
// endpoint registry that maps one endpoint definition to both an HTTP route
// and a CLI command, and CLI output helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mwootten/extractor/internal/extract"
)

// Client is an HTTP client for the extractor API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. No client-side timeout is set; callers
// bound calls through the context.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Get performs a GET request and decodes the JSON response.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, result)
}

// Post performs a POST request with JSON body and decodes the response.
func (c *Client) Post(ctx context.Context, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, result)
}

func (c *Client) handleResponse(resp *http.Response, result any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp.StatusCode, body)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Schema fetches the extraction request schema.
func (c *Client) Schema(ctx context.Context) (json.RawMessage, error) {
	var schema json.RawMessage
	if err := c.Get(ctx, "/schema", &schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// Extract submits an extraction request. A response with success=false is
// returned as a result, not an error; errors indicate transport, protocol,
// or decoding failures.
func (c *Client) Extract(ctx context.Context, req *extract.Request) (*extract.Result, error) {
	var result extract.Result
	if err := c.Post(ctx, "/extract", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
