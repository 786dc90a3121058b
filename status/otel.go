package status

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Observe registers observable gauges that report every metric of r on collection
// Integers go to fx_status_value, flags to fx_status_flag as 0/1, both keyed by a "metric" attribute
func Observe(meter metric.Meter, r *Registry, session string) (metric.Registration, error) {
	values, err := meter.Int64ObservableGauge("fx_status_value",
		metric.WithDescription("Pool, scheduler and controller counters"),
		metric.WithUnit("{count}"),
	)
	if err != nil {
		return nil, err
	}
	flags, err := meter.Int64ObservableGauge("fx_status_flag",
		metric.WithDescription("Boolean status flags as 0 or 1"),
	)
	if err != nil {
		return nil, err
	}

	sessionAttr := attribute.String("session", session)
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		r.Ints.Range(func(key string, ptr *atomic.Int64) {
			o.ObserveInt64(values, ptr.Load(), metric.WithAttributes(attribute.String("metric", key), sessionAttr))
		})
		r.Bools.Range(func(key string, ptr *atomic.Bool) {
			var v int64
			if ptr.Load() {
				v = 1
			}
			o.ObserveInt64(flags, v, metric.WithAttributes(attribute.String("metric", key), sessionAttr))
		})
		return nil
	}, values, flags)
}
