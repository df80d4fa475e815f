package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Validate(t *testing.T) {
	p := &Pipeline{Name: "Sales", Stages: DefaultStages()}
	require.NoError(t, p.Validate())
	for i, s := range p.Stages {
		assert.Equal(t, i, s.Position)
	}

	dup := &Pipeline{Name: "Sales", Stages: []*Stage{{Name: "A"}, {Name: "a"}}}
	assert.Error(t, dup.Validate())

	both := &Pipeline{Name: "Sales", Stages: []*Stage{{Name: "X", IsWon: true, IsLost: true}}}
	assert.Error(t, both.Validate())

	prob := &Pipeline{Name: "Sales", Stages: []*Stage{{Name: "X", Probability: 120}}}
	assert.Error(t, prob.Validate())
}

func TestOpportunity_ApplyStage(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	won := &Stage{ID: "won", Probability: 100, IsWon: true}
	open := &Stage{ID: "open", Probability: 40}

	o := &Opportunity{Status: OpportunityOpen}
	o.ApplyStage(won, now)
	assert.Equal(t, OpportunityWon, o.Status)
	assert.Equal(t, 100, o.Probability)
	require.NotNil(t, o.ClosedAt)

	o.ApplyStage(open, now.Add(time.Hour))
	assert.Equal(t, OpportunityOpen, o.Status)
	assert.Nil(t, o.ClosedAt)
	assert.Equal(t, "open", o.StageID)

	lost := &Stage{ID: "lost", IsLost: true}
	assert.Equal(t, OpportunityLost, StatusForStage(lost))
}

func TestOpportunity_Validate(t *testing.T) {
	o := &Opportunity{Title: " Deal ", PipelineID: "p1", Value: 1000, Currency: "EUR"}
	require.NoError(t, o.Validate())
	assert.Equal(t, "Deal", o.Title)

	assert.Error(t, (&Opportunity{PipelineID: "p1"}).Validate())
	assert.Error(t, (&Opportunity{Title: "x", PipelineID: "p1", Value: -1}).Validate())
	assert.Error(t, (&Opportunity{Title: "x"}).Validate())
}
