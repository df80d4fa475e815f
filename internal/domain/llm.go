package domain

import (
	"context"
)

//go:generate mockgen -destination mocks/mock_llm_client.go -package mocks github.com/salesflow/crm/internal/domain LLMClient

type LLMProvider string

const (
	LLMProviderAnthropic LLMProvider = "anthropic"
	LLMProviderGemini    LLMProvider = "gemini"
)

type CompletionRequest struct {
	System    string
	Prompt    string
	MaxTokens int
	Model     string
	// JSON asks the provider for a JSON-only reply where supported.
	JSON bool
}

type CompletionResponse struct {
	Text         string
	Model        string
	InputTokens  int64
	OutputTokens int64
}

func (r *CompletionResponse) TotalTokens() int64 {
	return r.InputTokens + r.OutputTokens
}

// LLMClient is a single-turn text completion against a hosted model.
type LLMClient interface {
	Provider() LLMProvider
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// Model pricing per million tokens (USD)
var modelPricing = map[string]struct {
	InputPerMTok  float64
	OutputPerMTok float64
}{
	"claude-opus-4-5-20251101":   {5.0, 25.0},
	"claude-sonnet-4-5-20250929": {3.0, 15.0},
	"claude-haiku-4-5-20251001":  {1.0, 5.0},
	"gemini-2.5-flash":           {0.3, 2.5},
	"gemini-2.5-pro":             {1.25, 10.0},
}

// EstimateCost returns the USD cost for a model, 0 for unknown models.
func EstimateCost(model string, inputTokens, outputTokens int64) float64 {
	pricing, ok := modelPricing[model]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1_000_000*pricing.InputPerMTok +
		float64(outputTokens)/1_000_000*pricing.OutputPerMTok
}
