package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowupStatus_CanTransitionTo(t *testing.T) {
	all := []FollowupStatus{FollowupPending, FollowupSent, FollowupCompleted, FollowupCancelled, FollowupSnoozed}
	allowed := map[FollowupStatus]map[FollowupStatus]bool{
		FollowupPending: {FollowupSent: true, FollowupCompleted: true, FollowupCancelled: true, FollowupSnoozed: true},
		FollowupSnoozed: {FollowupPending: true, FollowupSent: true, FollowupCompleted: true, FollowupCancelled: true},
		FollowupSent:    {FollowupCompleted: true},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.True(t, FollowupCompleted.IsTerminal())
	assert.True(t, FollowupCancelled.IsTerminal())
	assert.False(t, FollowupSent.IsTerminal())
}

func TestFollowup_TransitionTo(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("sent stamps sent_at", func(t *testing.T) {
		f := &Followup{Status: FollowupPending}
		require.NoError(t, f.TransitionTo(FollowupSent, now))
		assert.Equal(t, FollowupSent, f.Status)
		require.NotNil(t, f.SentAt)
		assert.Equal(t, now, *f.SentAt)
	})

	t.Run("completed from sent", func(t *testing.T) {
		f := &Followup{Status: FollowupSent}
		require.NoError(t, f.TransitionTo(FollowupCompleted, now))
		assert.NotNil(t, f.CompletedAt)
	})

	t.Run("terminal status is a conflict", func(t *testing.T) {
		f := &Followup{Status: FollowupCancelled}
		err := f.TransitionTo(FollowupPending, now)
		require.Error(t, err)
		var conflict *ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, FollowupCancelled, f.Status)
	})

	t.Run("wake clears snoozed_until", func(t *testing.T) {
		until := now.Add(-time.Minute)
		f := &Followup{Status: FollowupSnoozed, SnoozedUntil: &until}
		require.NoError(t, f.TransitionTo(FollowupPending, now))
		assert.Nil(t, f.SnoozedUntil)
	})
}

func TestFollowup_Snooze(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	f := &Followup{Status: FollowupPending}
	err := f.Snooze(now, now)
	var verr ValidationError
	assert.ErrorAs(t, err, &verr)

	until := now.Add(24 * time.Hour)
	require.NoError(t, f.Snooze(until, now))
	assert.Equal(t, FollowupSnoozed, f.Status)
	assert.Equal(t, until, *f.SnoozedUntil)
	assert.Equal(t, until, f.DueAt)

	later := until.Add(time.Hour)
	require.NoError(t, f.Snooze(later, now))
	assert.Equal(t, later, *f.SnoozedUntil)

	done := &Followup{Status: FollowupCompleted}
	assert.Error(t, done.Snooze(until, now))
}

func TestCreateFollowupRequest_Validate(t *testing.T) {
	due := time.Now().Add(time.Hour)
	emailID := "e1"

	tests := []struct {
		name    string
		req     CreateFollowupRequest
		wantErr bool
	}{
		{"manual with subject and due", CreateFollowupRequest{Subject: "Call back", DueAt: &due}, false},
		{"from email", CreateFollowupRequest{EmailIndexID: &emailID}, false},
		{"manual without subject", CreateFollowupRequest{DueAt: &due}, true},
		{"manual without due", CreateFollowupRequest{Subject: "x"}, true},
		{"bad priority", CreateFollowupRequest{EmailIndexID: &emailID, Priority: "urgent"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, PriorityMedium, tt.req.Priority)
		})
	}
}
