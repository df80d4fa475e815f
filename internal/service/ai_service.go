package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/service/llm"
	"github.com/salesflow/crm/internal/service/mailbox"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/tracing"
)

const maxPromptBody = 8000

const analyzeSystemPrompt = `You are a sales assistant inside a CRM. Read the email and answer with JSON:
{"summary": string, "sentiment": "positive"|"neutral"|"negative", "intent": string,
 "priority": "low"|"medium"|"high", "action_items": [string], "suggested_reply": string}`

const draftSystemPrompt = `You write short, friendly sales emails for a CRM user. Answer with JSON:
{"subject": string, "body": string}. The body is plain text without a signature.`

type AIService struct {
	client        domain.LLMClient
	repo          domain.AIRepository
	emails        domain.EmailRepository
	contacts      domain.ContactRepository
	orgRepo       domain.OrganizationRepository
	subscriptions domain.SubscriptionService
	authService   domain.AuthService
	logger        logger.Logger
	now           func() time.Time
}

type AIServiceConfig struct {
	Client                 domain.LLMClient
	Repository             domain.AIRepository
	EmailRepository        domain.EmailRepository
	ContactRepository      domain.ContactRepository
	OrganizationRepository domain.OrganizationRepository
	SubscriptionService    domain.SubscriptionService
	AuthService            domain.AuthService
	Logger                 logger.Logger
}

func NewAIService(cfg AIServiceConfig) *AIService {
	return &AIService{
		client:        cfg.Client,
		repo:          cfg.Repository,
		emails:        cfg.EmailRepository,
		contacts:      cfg.ContactRepository,
		orgRepo:       cfg.OrganizationRepository,
		subscriptions: cfg.SubscriptionService,
		authService:   cfg.AuthService,
		logger:        cfg.Logger,
		now:           time.Now,
	}
}

var _ domain.AIService = (*AIService)(nil)

func (s *AIService) Complete(ctx context.Context, organizationID string, kind domain.AIActivityKind, entityID string, req domain.CompletionRequest) (*domain.CompletionResponse, error) {
	return s.complete(ctx, organizationID, kind, entityID, req, nil)
}

// complete runs one LLM call under the organization's token quota and records an activity row.
// parse runs before the row is written so an unusable reply is logged as failed.
func (s *AIService) complete(ctx context.Context, organizationID string, kind domain.AIActivityKind, entityID string, req domain.CompletionRequest, parse func(text string) error) (*domain.CompletionResponse, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "AIService", string(kind))
	defer span.End()

	if err := s.subscriptions.CheckLimit(ctx, organizationID, domain.ResourceAITokens, 1); err != nil {
		return nil, err
	}

	started := s.now()
	resp, err := s.client.Complete(ctx, req)
	if err == nil && parse != nil {
		err = parse(resp.Text)
	}

	activity := &domain.AIActivity{
		OrganizationID: organizationID,
		Kind:           kind,
		EntityID:       entityID,
		Provider:       s.client.Provider(),
		Model:          req.Model,
		Status:         domain.AIActivitySucceeded,
		DurationMs:     s.now().Sub(started).Milliseconds(),
		CreatedAt:      s.now().UTC(),
	}
	if userID := domain.UserIDFromContext(ctx); userID != "" {
		activity.UserID = &userID
	}
	if resp != nil {
		activity.Model = resp.Model
		activity.InputTokens = resp.InputTokens
		activity.OutputTokens = resp.OutputTokens
		activity.CostUSD = domain.EstimateCost(resp.Model, resp.InputTokens, resp.OutputTokens)
	}
	if err != nil {
		activity.Status = domain.AIActivityFailed
		activity.Error = err.Error()
		tracing.MarkSpanError(ctx, err)
	}

	if logErr := s.repo.LogActivity(ctx, activity); logErr != nil {
		s.logger.WithField("error", logErr.Error()).Warn("Failed to log AI activity")
	}
	if resp != nil && resp.TotalTokens() > 0 {
		provider := string(activity.Provider)
		tracing.RecordLLMTokens(ctx, provider, "input", resp.InputTokens)
		tracing.RecordLLMTokens(ctx, provider, "output", resp.OutputTokens)
		if recErr := s.subscriptions.RecordAITokens(ctx, organizationID, resp.TotalTokens()); recErr != nil {
			s.logger.WithField("organization_id", organizationID).WithField("error", recErr.Error()).Warn("Failed to record AI token usage")
		}
	}

	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"organization_id": organizationID,
			"kind":            kind,
			"entity_id":       entityID,
			"error":           err.Error(),
		}).Error("AI request failed")
		return nil, err
	}
	return resp, nil
}

func (s *AIService) AnalyzeEmail(ctx context.Context, organizationID, emailID string) (*domain.EmailAnalysis, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	email, err := s.emails.GetByID(ctx, organizationID, emailID)
	if err != nil {
		return nil, err
	}

	analysis := &domain.EmailAnalysis{
		OrganizationID: organizationID,
		EmailIndexID:   email.ID,
	}
	req := domain.CompletionRequest{
		System: analyzeSystemPrompt,
		Prompt: describeEmail(email),
		JSON:   true,
	}
	resp, err := s.complete(ctx, organizationID, domain.AIKindAnalyzeEmail, email.ID, req, func(text string) error {
		result, err := llm.ParseJSON(text)
		if err != nil {
			return err
		}
		analysis.Summary = result.Get("summary").String()
		analysis.Intent = result.Get("intent").String()
		analysis.SuggestedReply = result.Get("suggested_reply").String()
		analysis.Sentiment = domain.Sentiment(strings.ToLower(result.Get("sentiment").String()))
		if !analysis.Sentiment.IsValid() {
			analysis.Sentiment = domain.SentimentNeutral
		}
		analysis.Priority = domain.FollowupPriority(strings.ToLower(result.Get("priority").String()))
		if !analysis.Priority.IsValid() {
			analysis.Priority = domain.PriorityMedium
		}
		analysis.ActionItems = []string{}
		result.Get("action_items").ForEach(func(_, item gjson.Result) bool {
			if v := strings.TrimSpace(item.String()); v != "" {
				analysis.ActionItems = append(analysis.ActionItems, v)
			}
			return true
		})
		if analysis.Summary == "" {
			return llm.ErrUnparseable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	analysis.Model = resp.Model
	analysis.CreatedAt = now
	analysis.UpdatedAt = now
	if err := s.repo.UpsertAnalysis(ctx, analysis); err != nil {
		s.logger.WithField("email_id", email.ID).WithField("error", err.Error()).Error("Failed to store email analysis")
		return nil, err
	}
	return analysis, nil
}

func (s *AIService) GetAnalysis(ctx context.Context, organizationID, emailID string) (*domain.EmailAnalysis, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAnalysis(ctx, organizationID, emailID)
}

// DraftFollowup carries no user check; callers have already authorized the follow-up.
// The organization's email signature is appended to the generated body.
func (s *AIService) DraftFollowup(ctx context.Context, organizationID string, followup *domain.Followup) (*domain.Draft, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a follow-up to %s about %q.\n", strings.Join(followup.Recipients, ", "), followup.Subject)
	if followup.OriginalSentAt != nil {
		days := int(s.now().Sub(*followup.OriginalSentAt).Hours() / 24)
		fmt.Fprintf(&b, "The original email was sent %d days ago and has had no reply.\n", days)
	}
	if followup.ContactID != nil {
		contact, err := s.contacts.GetByID(ctx, organizationID, *followup.ContactID)
		if err != nil && !domain.IsNotFound(err) {
			return nil, err
		}
		if contact != nil {
			fmt.Fprintf(&b, "The recipient is %s", contact.FullName())
			if contact.Company != "" {
				fmt.Fprintf(&b, " from %s", contact.Company)
			}
			b.WriteString(".\n")
		}
	}
	if followup.Notes != "" {
		fmt.Fprintf(&b, "Notes from the salesperson: %s\n", followup.Notes)
	}
	if followup.EmailIndexID != nil {
		email, err := s.emails.GetByID(ctx, organizationID, *followup.EmailIndexID)
		if err != nil && !domain.IsNotFound(err) {
			return nil, err
		}
		if email != nil {
			b.WriteString("\nOriginal email:\n")
			b.WriteString(describeEmail(email))
		}
	}

	draft, err := s.draft(ctx, organizationID, domain.AIKindDraftFollowup, followup.ID, b.String(), replySubject(followup.Subject))
	if err != nil {
		return nil, err
	}
	branding, err := s.orgRepo.GetBranding(ctx, organizationID)
	switch {
	case err == nil && strings.TrimSpace(branding.EmailSignature) != "":
		draft.Body += "\n\n" + strings.TrimSpace(branding.EmailSignature)
	case err != nil && !domain.IsNotFound(err):
		s.logger.WithField("organization_id", organizationID).WithField("error", err.Error()).Warn("Failed to load branding for draft signature")
	}
	return draft, nil
}

func (s *AIService) DraftReply(ctx context.Context, organizationID, emailID string, req domain.DraftReplyRequest) (*domain.Draft, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	email, err := s.emails.GetByID(ctx, organizationID, emailID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Write a reply to this email.\n")
	if req.Instructions != "" {
		fmt.Fprintf(&b, "Instructions: %s\n", req.Instructions)
	}
	b.WriteString("\n")
	b.WriteString(describeEmail(email))

	return s.draft(ctx, organizationID, domain.AIKindDraftReply, email.ID, b.String(), replySubject(email.Subject))
}

func (s *AIService) draft(ctx context.Context, organizationID string, kind domain.AIActivityKind, entityID, prompt, fallbackSubject string) (*domain.Draft, error) {
	draft := &domain.Draft{}
	req := domain.CompletionRequest{System: draftSystemPrompt, Prompt: prompt, JSON: true}
	_, err := s.complete(ctx, organizationID, kind, entityID, req, func(text string) error {
		result, err := llm.ParseJSON(text)
		if err != nil {
			return err
		}
		draft.Subject = strings.TrimSpace(result.Get("subject").String())
		draft.Body = strings.TrimSpace(result.Get("body").String())
		if draft.Body == "" {
			return llm.ErrUnparseable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if draft.Subject == "" {
		draft.Subject = fallbackSubject
	}
	return draft, nil
}

func (s *AIService) ListActivity(ctx context.Context, req domain.ListAIActivityRequest) (*domain.ListAIActivityResponse, error) {
	ctx, _, _, err := s.authService.AuthenticateUserForOrganization(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListActivity(ctx, req)
}

func describeEmail(email *domain.EmailWithContent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\n", email.FromAddress)
	fmt.Fprintf(&b, "To: %s\n", strings.Join(email.ToAddresses, ", "))
	fmt.Fprintf(&b, "Date: %s\n", email.SentAt.UTC().Format(time.RFC1123))
	fmt.Fprintf(&b, "Subject: %s\n\n", email.Subject)

	body := email.Snippet
	if email.Content != nil {
		body = email.Content.TextBody
		if strings.TrimSpace(body) == "" {
			body = mailbox.HTMLToText(email.Content.HTMLBody)
		}
	}
	if len(body) > maxPromptBody {
		body = body[:maxPromptBody]
	}
	b.WriteString(body)
	return b.String()
}
