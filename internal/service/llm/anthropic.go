package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/salesflow/crm/internal/domain"
)

const DefaultAnthropicModel = "claude-sonnet-4-5-20250929"

type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicClient builds a client; extra options are used by tests to point at a fake server.
func NewAnthropicClient(apiKey, model string, maxTokens int, httpClient *http.Client, opts ...option.RequestOption) *AnthropicClient {
	if model == "" {
		model = DefaultAnthropicModel
	}
	all := []option.RequestOption{option.WithAPIKey(apiKey)}
	if httpClient != nil {
		all = append(all, option.WithHTTPClient(httpClient))
	}
	all = append(all, opts...)
	return &AnthropicClient{
		client:    anthropic.NewClient(all...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *AnthropicClient) Provider() domain.LLMProvider {
	return domain.LLMProviderAnthropic
}

func (c *AnthropicClient) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := int64(req.MaxTokens)
	if maxTokens == 0 {
		maxTokens = int64(c.maxTokens)
	}
	if maxTokens == 0 {
		maxTokens = 2048
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	system := req.System
	if req.JSON {
		system = strings.TrimSpace(system + "\n\nRespond with a single JSON object and nothing else.")
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic completion failed: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &domain.CompletionResponse{
		Text:         text.String(),
		Model:        string(message.Model),
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}, nil
}
