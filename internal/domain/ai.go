package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_ai_repository.go -package mocks github.com/salesflow/crm/internal/domain AIRepository
//go:generate mockgen -destination mocks/mock_ai_service.go -package mocks github.com/salesflow/crm/internal/domain AIService

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) IsValid() bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

type EmailAnalysis struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	EmailIndexID   string           `json:"email_index_id"`
	Summary        string           `json:"summary"`
	Sentiment      Sentiment        `json:"sentiment"`
	Intent         string           `json:"intent"`
	Priority       FollowupPriority `json:"priority"`
	ActionItems    []string         `json:"action_items"`
	SuggestedReply string           `json:"suggested_reply"`
	Model          string           `json:"model"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type AIActivityKind string

const (
	AIKindAnalyzeEmail  AIActivityKind = "analyze_email"
	AIKindDraftFollowup AIActivityKind = "draft_followup"
	AIKindDraftReply    AIActivityKind = "draft_reply"
	AIKindSourcing      AIActivityKind = "supplier_sourcing"
)

type AIActivityStatus string

const (
	AIActivitySucceeded AIActivityStatus = "succeeded"
	AIActivityFailed    AIActivityStatus = "failed"
)

// AIActivity is one LLM call, kept for transparency and quota accounting.
type AIActivity struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	UserID         *string          `json:"user_id,omitempty"`
	Kind           AIActivityKind   `json:"kind"`
	EntityID       string           `json:"entity_id"`
	Provider       LLMProvider      `json:"provider"`
	Model          string           `json:"model"`
	InputTokens    int64            `json:"input_tokens"`
	OutputTokens   int64            `json:"output_tokens"`
	CostUSD        float64          `json:"cost_usd"`
	DurationMs     int64            `json:"duration_ms"`
	Status         AIActivityStatus `json:"status"`
	Error          string           `json:"error,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

type ListAIActivityRequest struct {
	OrganizationID string
	Kind           AIActivityKind
	Page
}

type ListAIActivityResponse struct {
	Activity   []*AIActivity `json:"activity"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

type DraftReplyRequest struct {
	Instructions string `json:"instructions"`
}

type AIRepository interface {
	UpsertAnalysis(ctx context.Context, analysis *EmailAnalysis) error
	GetAnalysis(ctx context.Context, organizationID, emailIndexID string) (*EmailAnalysis, error)
	LogActivity(ctx context.Context, activity *AIActivity) error
	ListActivity(ctx context.Context, req ListAIActivityRequest) (*ListAIActivityResponse, error)
}

type AIService interface {
	AnalyzeEmail(ctx context.Context, organizationID, emailID string) (*EmailAnalysis, error)
	GetAnalysis(ctx context.Context, organizationID, emailID string) (*EmailAnalysis, error)
	DraftFollowup(ctx context.Context, organizationID string, followup *Followup) (*Draft, error)
	DraftReply(ctx context.Context, organizationID, emailID string, req DraftReplyRequest) (*Draft, error)
	// Complete runs a prompt with activity logging and quota accounting; used by other services.
	Complete(ctx context.Context, organizationID string, kind AIActivityKind, entityID string, req CompletionRequest) (*CompletionResponse, error)
	ListActivity(ctx context.Context, req ListAIActivityRequest) (*ListAIActivityResponse, error)
}
