package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_setting_repository.go -package mocks github.com/salesflow/crm/internal/domain SettingRepository

// Well-known keys of the settings table.
const (
	SettingDBVersion          = "db_version"
	SettingLastSyncCycle      = "last_sync_cycle"
	SettingLastFollowupDigest = "last_followup_digest"
	SettingLastFollowupDue    = "last_followup_due"
)

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingRepository stores instance-wide key/value state such as scheduler checkpoints.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]*Setting, error)
	SetTime(ctx context.Context, key string, t time.Time) error
	// GetTime returns nil when the key was never written.
	GetTime(ctx context.Context, key string) (*time.Time, error)
}

type ErrSettingNotFound struct {
	Key string
}

func (e *ErrSettingNotFound) Error() string {
	return "setting not found: " + e.Key
}
