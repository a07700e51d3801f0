package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

const (
	GeminiName         = "gemini"
	geminiDefaultModel = "gemini-2.5-flash"
)

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey       string
	DefaultModel string
	// Rate limiting and retries
	RequestsPerMinute int
	MaxRetries        int
	RetryDelay        time.Duration
}

// GeminiClient implements LLMClient using the Google GenAI SDK.
type GeminiClient struct {
	client       *genai.Client
	defaultModel string
	limiter      *RateLimiter
	maxRetries   int
	retryDelay   time.Duration
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = geminiDefaultModel
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiClient{
		client:       client,
		defaultModel: cfg.DefaultModel,
		limiter:      NewRateLimiter(cfg.RequestsPerMinute),
		maxRetries:   cfg.MaxRetries,
		retryDelay:   cfg.RetryDelay,
	}, nil
}

// Name returns the client identifier.
func (c *GeminiClient) Name() string {
	return GeminiName
}

// Chat sends a chat completion request.
func (c *GeminiClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.ResponseFormat != nil {
		config.ResponseMIMEType = "application/json"
	}

	var userParts []string
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			config.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
		default:
			userParts = append(userParts, m.Content)
		}
	}
	if len(userParts) == 0 {
		return nil, fmt.Errorf("no user message in request")
	}

	var contents []*genai.Content
	for _, p := range userParts {
		contents = append(contents, genai.NewContentFromText(p, genai.RoleUser))
	}

	attempts := 0
	var resp *genai.GenerateContentResponse
	err := retry.Do(
		func() error {
			attempts++
			r, err := c.client.Models.GenerateContent(ctx, model, contents, config)
			if err != nil {
				return err
			}
			resp = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	result := &ChatResult{
		Content:       resp.Text(),
		Provider:      GeminiName,
		ModelUsed:     model,
		RequestID:     requestID,
		Attempts:      attempts,
		ExecutionTime: time.Since(start),
	}
	if usage := resp.UsageMetadata; usage != nil {
		result.PromptTokens = int(usage.PromptTokenCount)
		result.CompletionTokens = int(usage.CandidatesTokenCount)
		result.TotalTokens = int(usage.TotalTokenCount)
	}

	if req.ResponseFormat != nil {
		parsed, err := ParseStructuredJSON(result.Content)
		if err != nil {
			return result, fmt.Errorf("gemini returned unparseable JSON: %w", err)
		}
		result.ParsedJSON = parsed
	}

	return result, nil
}

// Verify interface
var _ LLMClient = (*GeminiClient)(nil)
