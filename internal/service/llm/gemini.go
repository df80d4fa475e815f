package llm

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/salesflow/crm/internal/domain"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewGeminiClient talks to the Gemini API; baseURL is empty outside tests.
func NewGeminiClient(ctx context.Context, apiKey, model string, maxTokens int, httpClient *http.Client, baseURL string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model, maxTokens: maxTokens}, nil
}

func (c *GeminiClient) Provider() domain.LLMProvider {
	return domain.LLMProviderGemini
}

func (c *GeminiClient) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	config := &genai.GenerateContentConfig{}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	result, err := c.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini completion failed: %w", err)
	}

	resp := &domain.CompletionResponse{
		Text:  result.Text(),
		Model: model,
	}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	if result.UsageMetadata != nil {
		resp.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
		resp.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
	}
	return resp, nil
}
