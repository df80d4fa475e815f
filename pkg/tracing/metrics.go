package tracing

import (
	"context"
	"sync"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	KeyProvider, _ = tag.NewKey("provider")
	KeyStatus, _   = tag.NewKey("status")
	KeyKind, _     = tag.NewKey("kind")

	MessagesStored  = stats.Int64("crm/sync/messages_stored", "Messages written to the email index", stats.UnitDimensionless)
	MessagesSkipped = stats.Int64("crm/sync/messages_skipped", "Messages skipped because they were already synced", stats.UnitDimensionless)
	SyncDuration    = stats.Float64("crm/sync/job_duration_ms", "Duration of an account sync job", stats.UnitMilliseconds)

	FollowupTransitions = stats.Int64("crm/followups/transitions", "Follow-up status transitions", stats.UnitDimensionless)

	LLMTokens = stats.Int64("crm/llm/tokens", "Tokens consumed by LLM calls", stats.UnitDimensionless)
)

var registerOnce sync.Once

// RegisterCRMViews registers the application views. Safe to call more than once.
func RegisterCRMViews() error {
	var err error
	registerOnce.Do(func() {
		err = view.Register(
			&view.View{Name: "crm/sync/messages_stored", Measure: MessagesStored, Aggregation: view.Sum(), TagKeys: []tag.Key{KeyProvider}},
			&view.View{Name: "crm/sync/messages_skipped", Measure: MessagesSkipped, Aggregation: view.Sum(), TagKeys: []tag.Key{KeyProvider}},
			&view.View{
				Name:        "crm/sync/job_duration_ms",
				Measure:     SyncDuration,
				Aggregation: view.Distribution(100, 500, 1000, 5000, 15000, 60000, 300000),
				TagKeys:     []tag.Key{KeyProvider, KeyStatus},
			},
			&view.View{Name: "crm/followups/transitions", Measure: FollowupTransitions, Aggregation: view.Count(), TagKeys: []tag.Key{KeyStatus}},
			&view.View{Name: "crm/llm/tokens", Measure: LLMTokens, Aggregation: view.Sum(), TagKeys: []tag.Key{KeyProvider, KeyKind}},
		)
	})
	return err
}

// RecordSync records the counters of a finished sync job.
func RecordSync(ctx context.Context, provider, status string, stored, skipped int, durationMs float64) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyProvider, provider), tag.Upsert(KeyStatus, status)},
		MessagesStored.M(int64(stored)),
		MessagesSkipped.M(int64(skipped)),
		SyncDuration.M(durationMs),
	)
}

func RecordFollowupTransition(ctx context.Context, status string) {
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeyStatus, status)}, FollowupTransitions.M(1))
}

func RecordLLMTokens(ctx context.Context, provider, kind string, tokens int64) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyProvider, provider), tag.Upsert(KeyKind, kind)},
		LLMTokens.M(tokens),
	)
}
