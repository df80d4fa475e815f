// Package llm adapts hosted language models to domain.LLMClient.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/salesflow/crm/config"
	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/tracing"
)

var (
	ErrNotConfigured = errors.New("no AI provider is configured")
	ErrUnparseable   = errors.New("AI response could not be parsed")
)

// NewClient picks the provider named in config. A missing API key yields a client that
// fails every call with ErrNotConfigured so the rest of the app still starts.
func NewClient(ctx context.Context, cfg config.LLMConfig) (domain.LLMClient, error) {
	httpClient := tracing.WrapHTTPClient(&http.Client{Timeout: 2 * time.Minute})

	switch domain.LLMProvider(strings.ToLower(cfg.Provider)) {
	case domain.LLMProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return disabledClient{provider: domain.LLMProviderGemini}, nil
		}
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxTokens, httpClient, "")
	case domain.LLMProviderAnthropic, "":
		if cfg.AnthropicAPIKey == "" {
			return disabledClient{provider: domain.LLMProviderAnthropic}, nil
		}
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.MaxTokens, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

type disabledClient struct {
	provider domain.LLMProvider
}

func (d disabledClient) Provider() domain.LLMProvider { return d.provider }

func (d disabledClient) Complete(context.Context, domain.CompletionRequest) (*domain.CompletionResponse, error) {
	return nil, ErrNotConfigured
}

// ParseJSON extracts the JSON object from a model reply, tolerating code fences and prose around it.
func ParseJSON(text string) (gjson.Result, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "}]")
	if start < 0 || end < start {
		return gjson.Result{}, ErrUnparseable
	}
	text = text[start : end+1]
	if !gjson.Valid(text) {
		return gjson.Result{}, ErrUnparseable
	}
	return gjson.Parse(text), nil
}
