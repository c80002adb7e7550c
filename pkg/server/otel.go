package server

import (
	"context"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/staffdesk/employee-api/pkg/config"
	"github.com/staffdesk/employee-api/pkg/logging"
)

// InitTracer installs the global tracer provider and propagator. Spans are sampled at TRACE_RATIO and
// exported only when TRACE_EXPORTER and TRACER_URL are both set. The returned provider must be shut down
// to flush pending spans.
func InitTracer(conf config.Config, logger logging.Logger, appName, appVersion string) *sdktrace.TracerProvider {
	traceRatio, err := strconv.ParseFloat(conf.GetOrDefault("TRACE_RATIO", "1"), 64)
	if err != nil {
		logger.Errorf("invalid value for TRACE_RATIO, sampling every trace: %v", err)

		traceRatio = 1
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(appName),
			semconv.ServiceVersion(appVersion),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(traceRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	traceExporter := conf.Get("TRACE_EXPORTER")
	tracerURL := conf.Get("TRACER_URL")

	if !isValidConfig(logger, traceExporter, tracerURL) {
		return tp
	}

	exporter, err := getExporter(logger, traceExporter, tracerURL)
	if err != nil {
		logger.Errorf("could not create %s trace exporter: %v", traceExporter, err)

		return tp
	}

	if exporter != nil {
		tp.RegisterSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter))
	}

	return tp
}

func isValidConfig(logger logging.Logger, name, url string) bool {
	switch {
	case url == "" && name == "":
		logger.Debug("tracing is disabled, as configs are not provided")
		return false
	case url != "" && name == "":
		logger.Error("missing TRACE_EXPORTER config, should be provided with TRACER_URL to enable tracing")
		return false
	case url == "" && name != "":
		logger.Error("missing TRACER_URL config, should be provided with TRACE_EXPORTER to enable tracing")
		return false
	}

	return true
}

func getExporter(logger logging.Logger, name, url string) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(name) {
	case "otlp", "jaeger":
		logger.Infof("Exporting traces to %s at %s", strings.ToLower(name), url)

		return otlptracegrpc.New(context.Background(), otlptracegrpc.WithInsecure(), otlptracegrpc.WithEndpoint(url))
	case "zipkin":
		logger.Infof("Exporting traces to zipkin at %s", url)

		return zipkin.New(url)
	default:
		logger.Errorf("unsupported TRACE_EXPORTER: %s", name)

		return nil, nil
	}
}
