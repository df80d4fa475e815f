package domain

import (
	"context"
	"time"

	"github.com/salesflow/crm/pkg/mq"
)

//go:generate mockgen -destination mocks/mock_events.go -package mocks github.com/salesflow/crm/internal/domain EventPublisher,Deduper

const (
	EventEmailSynced           = "email.synced"
	EventFollowupCreated       = "followup.created"
	EventFollowupDue           = "followup.due"
	EventFollowupStatusChanged = "followup.status_changed"
	EventOpportunityStage      = "opportunity.stage_changed"
	EventSubscriptionChanged   = "subscription.changed"
)

// EventPublisher is satisfied by mq.Publisher and mq.NoopPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, event mq.Event) error
}

// Deduper is satisfied by dedup.RedisDeduper and dedup.NoopDeduper.
type Deduper interface {
	Seen(ctx context.Context, accountID, messageID string) bool
	MarkSeen(ctx context.Context, accountID, messageID string)
	AcquireAccountLock(ctx context.Context, accountID string, ttl time.Duration) (func(), bool, error)
}
