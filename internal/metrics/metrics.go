// Package metrics holds the Prometheus collectors shared by the ingestor and the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	KernelCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aquaculture_kernel_calls_total",
		Help: "Statistics kernel calls by operation and execution path (native or fallback).",
	}, []string{"op", "path"})
	AccelerationReady = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aquaculture_acceleration_ready",
		Help: "1 when the native-accelerated kernel is loaded, 0 otherwise.",
	})
	AlertsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aquaculture_alerts_raised_total",
		Help: "Alerts produced by the threshold classifier.",
	}, []string{"parameter", "severity"})
	PredictionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquaculture_predictions_generated_total",
		Help: "Total number of forecast points computed.",
	})
	ReadingsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquaculture_readings_ingested_total",
		Help: "Total number of sensor readings accepted by the ingestor.",
	})
	ReadingsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquaculture_readings_failed_total",
		Help: "Total number of sensor payloads that could not be decoded or stored.",
	})
	SinkFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aquaculture_sink_failures_total",
		Help: "Failed deliveries of results to persistence/notification sinks.",
	}, []string{"sink", "kind"})
	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aquaculture_decision_cycle_duration_seconds",
		Help:    "Duration of one stat/alert/score/recommend/forecast cycle.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})
)
