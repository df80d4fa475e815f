package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_subscription_repository.go -package mocks github.com/salesflow/crm/internal/domain SubscriptionRepository
//go:generate mockgen -destination mocks/mock_subscription_service.go -package mocks github.com/salesflow/crm/internal/domain SubscriptionService

type PlanID string

const (
	PlanFree    PlanID = "free"
	PlanStarter PlanID = "starter"
	PlanPro     PlanID = "pro"
	PlanPremium PlanID = "premium"
)

// Unlimited disables a plan limit.
const Unlimited = -1

type PlanLimits struct {
	MaxContacts      int   `json:"max_contacts"`
	MaxEmailAccounts int   `json:"max_email_accounts"`
	MaxMembers       int   `json:"max_members"`
	MonthlyAITokens  int64 `json:"monthly_ai_tokens"`
}

type Plan struct {
	ID           PlanID     `json:"id"`
	Name         string     `json:"name"`
	MonthlyPrice int64      `json:"monthly_price"` // cents
	Currency     string     `json:"currency"`
	Limits       PlanLimits `json:"limits"`
}

var planCatalog = []Plan{
	{ID: PlanFree, Name: "Free", MonthlyPrice: 0, Currency: "EUR", Limits: PlanLimits{
		MaxContacts: 100, MaxEmailAccounts: 1, MaxMembers: 1, MonthlyAITokens: 50_000,
	}},
	{ID: PlanStarter, Name: "Starter", MonthlyPrice: 1900, Currency: "EUR", Limits: PlanLimits{
		MaxContacts: 1_000, MaxEmailAccounts: 3, MaxMembers: 3, MonthlyAITokens: 500_000,
	}},
	{ID: PlanPro, Name: "Pro", MonthlyPrice: 4900, Currency: "EUR", Limits: PlanLimits{
		MaxContacts: 10_000, MaxEmailAccounts: 10, MaxMembers: 10, MonthlyAITokens: 2_000_000,
	}},
	{ID: PlanPremium, Name: "Premium", MonthlyPrice: 9900, Currency: "EUR", Limits: PlanLimits{
		MaxContacts: Unlimited, MaxEmailAccounts: Unlimited, MaxMembers: Unlimited, MonthlyAITokens: 10_000_000,
	}},
}

func Plans() []Plan {
	out := make([]Plan, len(planCatalog))
	copy(out, planCatalog)
	return out
}

func GetPlan(id PlanID) (Plan, bool) {
	for _, p := range planCatalog {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

type SubscriptionStatus string

const (
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

type Subscription struct {
	ID                     string             `json:"id"`
	OrganizationID         string             `json:"organization_id"`
	Plan                   PlanID             `json:"plan"`
	Status                 SubscriptionStatus `json:"status"`
	CurrentPeriodStart     time.Time          `json:"current_period_start"`
	CurrentPeriodEnd       time.Time          `json:"current_period_end"`
	CancelAtPeriodEnd      bool               `json:"cancel_at_period_end"`
	ProviderCustomerID     *string            `json:"provider_customer_id,omitempty"`
	ProviderSubscriptionID *string            `json:"provider_subscription_id,omitempty"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// EffectivePlan falls back to free once a subscription is canceled.
func (s *Subscription) EffectivePlan() PlanID {
	if s == nil || s.Status == SubscriptionCanceled {
		return PlanFree
	}
	return s.Plan
}

type UsageCounter struct {
	OrganizationID string    `json:"organization_id"`
	PeriodStart    time.Time `json:"period_start"`
	AITokens       int64     `json:"ai_tokens"`
}

// MonthStart truncates t to the first instant of its UTC month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

type LimitedResource string

const (
	ResourceContacts      LimitedResource = "contacts"
	ResourceEmailAccounts LimitedResource = "email_accounts"
	ResourceMembers       LimitedResource = "members"
	ResourceAITokens      LimitedResource = "ai_tokens"
)

type Usage struct {
	Plan          Plan  `json:"plan"`
	Contacts      int   `json:"contacts"`
	EmailAccounts int   `json:"email_accounts"`
	Members       int   `json:"members"`
	AITokens      int64 `json:"ai_tokens"`
}

type ChangePlanRequest struct {
	Plan PlanID `json:"plan"`
}

func (r *ChangePlanRequest) Validate() error {
	if _, ok := GetPlan(r.Plan); !ok {
		return NewValidationError("unknown plan")
	}
	return nil
}

// BillingEvent is the payload of a billing-provider webhook.
type BillingEvent struct {
	Type string           `json:"type"`
	Data BillingEventData `json:"data"`
}

type BillingEventData struct {
	OrganizationID     string     `json:"organization_id"`
	Plan               PlanID     `json:"plan,omitempty"`
	Status             string     `json:"status,omitempty"`
	CustomerID         string     `json:"customer_id,omitempty"`
	SubscriptionID     string     `json:"subscription_id,omitempty"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  *bool      `json:"cancel_at_period_end,omitempty"`
}

const (
	BillingEventSubscriptionUpdated = "subscription.updated"
	BillingEventSubscriptionDeleted = "subscription.deleted"
	BillingEventInvoicePaid         = "invoice.paid"
	BillingEventPaymentFailed       = "invoice.payment_failed"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByOrganization(ctx context.Context, organizationID string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	GetUsage(ctx context.Context, organizationID string, periodStart time.Time) (*UsageCounter, error)
	AddAITokens(ctx context.Context, organizationID string, periodStart time.Time, tokens int64) error
}

type SubscriptionService interface {
	Plans() []Plan
	Get(ctx context.Context, organizationID string) (*Subscription, error)
	// StartFree creates the free subscription of a new organization.
	StartFree(ctx context.Context, organizationID string) (*Subscription, error)
	ChangePlan(ctx context.Context, organizationID string, req ChangePlanRequest) (*Subscription, error)
	Cancel(ctx context.Context, organizationID string) (*Subscription, error)
	Usage(ctx context.Context, organizationID string) (*Usage, error)
	// CheckLimit returns a plan limit PermissionError when adding `adding` more would exceed the plan.
	CheckLimit(ctx context.Context, organizationID string, resource LimitedResource, adding int64) error
	RecordAITokens(ctx context.Context, organizationID string, tokens int64) error
	HandleWebhook(ctx context.Context, event BillingEvent) error
}
