// Package telemetry configures the OpenTelemetry meter provider that exports status metrics
package telemetry

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/olekukonko/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// DefaultServiceName tags exported metrics when Config.ServiceName is empty
const DefaultServiceName = "fx-sandbox"

// ErrEndpoint marks an unparsable OTLP endpoint
var ErrEndpoint = errors.Named("telemetry_endpoint")

// Config selects the OTLP/HTTP collector, an empty endpoint disables export
type Config struct {
	Endpoint    string
	ServiceName string
	Interval    time.Duration
}

// Init builds and installs a meter provider
// Without an endpoint a noop provider is returned and shutdown does nothing
func Init(ctx context.Context, cfg Config) (metric.MeterProvider, func(context.Context) error, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		mp := noop.NewMeterProvider()
		otel.SetMeterProvider(mp)
		return mp, func(context.Context) error { return nil }, nil
	}

	service := strings.TrimSpace(cfg.ServiceName)
	if service == "" {
		service = DefaultServiceName
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}

	host, insecure, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, nil, err
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, errors.Newf("telemetry: create metric exporter: %v", err).Wrap(err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(service)))
	if err != nil {
		return nil, nil, errors.Newf("telemetry: create resource: %v", err).Wrap(err)
	}

	reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.Interval))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	otel.SetMeterProvider(mp)
	return mp, mp.Shutdown, nil
}

// parseEndpoint accepts host:port or a URL, only https keeps TLS
func parseEndpoint(raw string) (string, bool, error) {
	if !strings.Contains(raw, "://") {
		return raw, true, nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false, errors.Newf("telemetry: parse endpoint %q: %v", raw, err).Wrap(ErrEndpoint)
	}
	if parsed.Host == "" {
		return "", false, errors.Newf("telemetry: endpoint %q has no host", raw).Wrap(ErrEndpoint)
	}
	return parsed.Host, parsed.Scheme != "https", nil
}
