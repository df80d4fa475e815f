package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/salesflow/crm/config"
	"github.com/salesflow/crm/pkg/logger"
)

func TestInitTracing(t *testing.T) {
	log := logger.NewMockLogger(t)

	t.Run("disabled is a no-op", func(t *testing.T) {
		err := InitTracing(&config.TracingConfig{Enabled: false, TraceExporter: "bogus"}, log)
		assert.NoError(t, err)
	})

	t.Run("unsupported trace exporter", func(t *testing.T) {
		err := InitTracing(&config.TracingConfig{Enabled: true, TraceExporter: "bogus"}, log)
		assert.ErrorContains(t, err, "unsupported trace exporter")
	})

	t.Run("unsupported metrics exporter", func(t *testing.T) {
		err := initMetricsExporters(&config.TracingConfig{MetricsExporter: "prometheus,bogus", PrometheusPort: 0}, log)
		assert.ErrorContains(t, err, "unsupported metrics exporter")
	})
}

func TestExporterValidation(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
		msg  string
	}{
		{"jaeger", func() error { return initJaegerExporter(&config.TracingConfig{}) }, "Jaeger endpoint is required"},
		{"zipkin", func() error { return initZipkinExporter(&config.TracingConfig{}) }, "Zipkin endpoint is required"},
		{"stackdriver", func() error { return initStackdriverTraceExporter(&config.TracingConfig{}) }, "Stackdriver project ID is required"},
		{"datadog", func() error { return initDatadogTraceExporter(&config.TracingConfig{}) }, "Datadog agent address is required"},
		{"xray", func() error { return initXRayExporter(&config.TracingConfig{}) }, "AWS region is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.fn(), tt.msg)
		})
	}
}

func TestDatadogAgentFallback(t *testing.T) {
	assert.Equal(t, "dd:8126", datadogAgent(&config.TracingConfig{DatadogAgentAddress: "dd:8126", AgentEndpoint: "agent:1"}))
	assert.Equal(t, "agent:1", datadogAgent(&config.TracingConfig{AgentEndpoint: "agent:1"}))
}

func TestTraceMethodWithResult(t *testing.T) {
	n, err := TraceMethodWithResult(context.Background(), "SyncService", "Count", func(ctx context.Context) (int, error) {
		assert.NotNil(t, trace.FromContext(ctx))
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	boom := errors.New("boom")
	_, err = TraceMethodWithResult(context.Background(), "SupplierService", "FetchWebsite", func(ctx context.Context) (string, error) {
		return "", boom
	})
	assert.Equal(t, boom, err)
}

func TestAddAttributeAndMarkSpanError(t *testing.T) {
	// no span in context
	AddAttribute(context.Background(), "key", "value")
	MarkSpanError(context.Background(), errors.New("ignored"))

	ctx, span := StartServiceSpan(context.Background(), "svc", "method")
	AddAttribute(ctx, "string", "v")
	AddAttribute(ctx, "int", 1)
	AddAttribute(ctx, "int64", int64(2))
	AddAttribute(ctx, "bool", true)
	AddAttribute(ctx, "other", 1.5)
	MarkSpanError(ctx, nil)
	MarkSpanError(ctx, errors.New("failed"))
	EndSpan(span, nil)
}

func TestWrapHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := WrapHTTPClient(&http.Client{Timeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, client.Timeout)

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, 30*time.Second, WrapHTTPClient(nil).Timeout)
}

func TestCRMViews(t *testing.T) {
	require.NoError(t, RegisterCRMViews())
	require.NoError(t, RegisterCRMViews())

	ctx := context.Background()
	RecordSync(ctx, "imap", "completed", 3, 1, 120)
	RecordFollowupTransition(ctx, "sent")
	RecordLLMTokens(ctx, "anthropic", "analyze_email", 512)

	rows, err := view.RetrieveData("crm/sync/messages_stored")
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
}

func TestNewPrometheusRegistry(t *testing.T) {
	families, err := NewPrometheusRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
