package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlanCatalog(t *testing.T) {
	plans := Plans()
	assert.Len(t, plans, 4)

	free, ok := GetPlan(PlanFree)
	assert.True(t, ok)
	assert.Equal(t, int64(0), free.MonthlyPrice)

	premium, _ := GetPlan(PlanPremium)
	assert.Equal(t, Unlimited, premium.Limits.MaxContacts)

	plans[0].Name = "mutated"
	again, _ := GetPlan(PlanFree)
	assert.Equal(t, "Free", again.Name)

	_, ok = GetPlan("enterprise")
	assert.False(t, ok)
}

func TestSubscription_EffectivePlan(t *testing.T) {
	var nilSub *Subscription
	assert.Equal(t, PlanFree, nilSub.EffectivePlan())
	assert.Equal(t, PlanPro, (&Subscription{Plan: PlanPro, Status: SubscriptionActive}).EffectivePlan())
	assert.Equal(t, PlanFree, (&Subscription{Plan: PlanPro, Status: SubscriptionCanceled}).EffectivePlan())
}

func TestMonthStart(t *testing.T) {
	in := time.Date(2026, 7, 19, 22, 30, 0, 0, time.FixedZone("X", 3600))
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), MonthStart(in))
}

func TestEstimateCost(t *testing.T) {
	assert.InDelta(t, 18.0, EstimateCost("claude-sonnet-4-5-20250929", 1_000_000, 1_000_000), 0.0001)
	assert.Equal(t, 0.0, EstimateCost("unknown", 10, 10))
}
