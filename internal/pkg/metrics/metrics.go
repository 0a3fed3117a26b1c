// Package metrics holds the gateway's Prometheus collectors. Everything
// registers into a process-local registry served on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry is the gateway's metrics registry.
var Registry = prometheus.NewRegistry()

var (
	// LifecycleState reports the current lifecycle state as a one-hot gauge
	// over the "state" label.
	LifecycleState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "autocore_gateway_lifecycle_state",
			Help: "Current gateway lifecycle state (1 for the active state, 0 otherwise).",
		},
		[]string{"state"},
	)

	// RefreshTotal counts snapshot refresh cycles by outcome.
	RefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autocore_gateway_refresh_total",
			Help: "Total snapshot refresh cycles.",
		},
		[]string{"outcome"}, // outcome: success/failed/cached
	)

	// RefreshDuration measures one refresh cycle end to end.
	RefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "autocore_gateway_refresh_duration_seconds",
			Help:    "Duration of snapshot refresh cycles.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// MQTTPublishTotal counts outgoing MQTT publishes by topic kind.
	MQTTPublishTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autocore_gateway_mqtt_publish_total",
			Help: "Total MQTT messages published.",
		},
		[]string{"kind", "status"}, // status: success/relayed/failed
	)

	// BackendRequestDuration measures backend REST calls.
	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autocore_gateway_backend_request_duration_seconds",
			Help:    "Latency of backend REST calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		LifecycleState,
		RefreshTotal,
		RefreshDuration,
		MQTTPublishTotal,
		BackendRequestDuration,
	)
}

// ObserveBackendRequest records the latency of one backend REST call.
func ObserveBackendRequest(operation string, started time.Time) {
	BackendRequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// SetLifecycleState flips the one-hot state gauge to the given state.
func SetLifecycleState(states []string, current string) {
	for _, s := range states {
		v := 0.0
		if s == current {
			v = 1.0
		}
		LifecycleState.WithLabelValues(s).Set(v)
	}
}
