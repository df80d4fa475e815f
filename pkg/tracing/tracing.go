package tracing

import (
	"fmt"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	ocprometheus "contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/stackdriver"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/salesflow/crm/config"
	"github.com/salesflow/crm/pkg/logger"
)

// InitTracing configures opencensus exporters and registers the HTTP, SQL and CRM views.
// codecov:ignore:start
func InitTracing(cfg *config.TracingConfig, log logger.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if err := initTraceExporter(cfg, log); err != nil {
		return err
	}

	if err := initMetricsExporters(cfg, log); err != nil {
		return err
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"trace_exporter":   cfg.TraceExporter,
		"metrics_exporter": cfg.MetricsExporter,
	}).Info("OpenCensus initialized")
	return nil
}

func initTraceExporter(cfg *config.TracingConfig, log logger.Logger) error {
	switch cfg.TraceExporter {
	case "jaeger":
		return initJaegerExporter(cfg)
	case "zipkin":
		return initZipkinExporter(cfg)
	case "stackdriver":
		return initStackdriverTraceExporter(cfg)
	case "datadog":
		return initDatadogTraceExporter(cfg)
	case "xray":
		return initXRayExporter(cfg)
	case "none", "":
		log.Debug("No trace exporter configured")
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
}

func initMetricsExporters(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.MetricsExporter == "none" || cfg.MetricsExporter == "" {
		return nil
	}

	for _, exporter := range strings.Split(cfg.MetricsExporter, ",") {
		exporter = strings.TrimSpace(exporter)
		if exporter == "" {
			continue
		}

		var err error
		switch exporter {
		case "prometheus":
			err = initPrometheusExporter(cfg, log)
		case "stackdriver":
			err = initStackdriverMetricsExporter(cfg, log)
		case "datadog":
			err = initDatadogMetricsExporter(cfg, log)
		default:
			return fmt.Errorf("unsupported metrics exporter: %s", exporter)
		}
		if err != nil {
			return fmt.Errorf("failed to initialize %s metrics exporter: %w", exporter, err)
		}
	}

	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}

	return RegisterCRMViews()
}

func initJaegerExporter(cfg *config.TracingConfig) error {
	if cfg.JaegerEndpoint == "" {
		return fmt.Errorf("Jaeger endpoint is required for Jaeger exporter")
	}

	je, err := jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: cfg.JaegerEndpoint,
		ServiceName:       cfg.ServiceName,
		Process:           jaeger.Process{ServiceName: cfg.ServiceName},
	})
	if err != nil {
		return fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	trace.RegisterExporter(je)
	return nil
}

func initZipkinExporter(cfg *config.TracingConfig) error {
	if cfg.ZipkinEndpoint == "" {
		return fmt.Errorf("Zipkin endpoint is required for Zipkin exporter")
	}

	trace.RegisterExporter(zipkin.NewExporter(zipkinhttp.NewReporter(cfg.ZipkinEndpoint), nil))
	return nil
}

func initStackdriverTraceExporter(cfg *config.TracingConfig) error {
	if cfg.StackdriverProjectID == "" {
		return fmt.Errorf("Stackdriver project ID is required for Stackdriver exporter")
	}

	se, err := stackdriver.NewExporter(stackdriver.Options{ProjectID: cfg.StackdriverProjectID})
	if err != nil {
		return fmt.Errorf("failed to create Stackdriver exporter: %w", err)
	}

	trace.RegisterExporter(se)
	return nil
}

func datadogAgent(cfg *config.TracingConfig) string {
	if cfg.DatadogAgentAddress != "" {
		return cfg.DatadogAgentAddress
	}
	return cfg.AgentEndpoint
}

func initDatadogTraceExporter(cfg *config.TracingConfig) error {
	agentAddr := datadogAgent(cfg)
	if agentAddr == "" {
		return fmt.Errorf("Datadog agent address is required for Datadog exporter")
	}

	exporter, err := datadog.NewExporter(datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: agentAddr,
		StatsAddr: agentAddr,
	})
	if err != nil {
		return fmt.Errorf("failed to create Datadog exporter: %w", err)
	}

	trace.RegisterExporter(exporter)
	return nil
}

func initXRayExporter(cfg *config.TracingConfig) error {
	if cfg.XRayRegion == "" {
		return fmt.Errorf("AWS region is required for X-Ray exporter")
	}

	exporter, err := aws.NewExporter(aws.WithRegion(cfg.XRayRegion), aws.WithVersion("latest"))
	if err != nil {
		return fmt.Errorf("failed to create AWS X-Ray exporter: %w", err)
	}

	trace.RegisterExporter(exporter)
	return nil
}

// NewPrometheusRegistry returns a registry carrying the Go runtime and process collectors.
func NewPrometheusRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func initPrometheusExporter(cfg *config.TracingConfig, log logger.Logger) error {
	pe, err := ocprometheus.NewExporter(ocprometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		Registry:  NewPrometheusRegistry(),
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Prometheus exporter error")
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	view.RegisterExporter(pe)

	if cfg.PrometheusPort <= 0 {
		return nil
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", pe)

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.PrometheusPort),
			Handler: mux,
		}

		log.WithField("port", cfg.PrometheusPort).Info("Starting Prometheus metrics server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithField("error", err.Error()).Error("Prometheus metrics server stopped")
		}
	}()

	return nil
}

func initStackdriverMetricsExporter(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.StackdriverProjectID == "" {
		return fmt.Errorf("Stackdriver project ID is required for Stackdriver metrics exporter")
	}

	se, err := stackdriver.NewExporter(stackdriver.Options{
		ProjectID:    cfg.StackdriverProjectID,
		MetricPrefix: cfg.ServiceName,
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Stackdriver metrics exporter error")
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Stackdriver metrics exporter: %w", err)
	}

	view.RegisterExporter(se)
	return nil
}

func initDatadogMetricsExporter(cfg *config.TracingConfig, log logger.Logger) error {
	agentAddr := datadogAgent(cfg)
	if agentAddr == "" {
		return fmt.Errorf("Datadog agent address is required for Datadog metrics exporter")
	}

	options := datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: agentAddr,
		StatsAddr: agentAddr,
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Datadog metrics exporter error")
		},
	}
	if cfg.DatadogAPIKey != "" {
		options.GlobalTags = map[string]interface{}{"api_key": cfg.DatadogAPIKey}
	}

	exporter, err := datadog.NewExporter(options)
	if err != nil {
		return fmt.Errorf("failed to create Datadog metrics exporter: %w", err)
	}

	view.RegisterExporter(exporter)
	return nil
}

// codecov:ignore:end
