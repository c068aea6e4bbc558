// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntelligenceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tara_intelligence_requests_total",
			Help: "Total number of intelligence-service requests by kind",
		},
		[]string{"request_type"},
	)

	IntelligenceFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tara_intelligence_fallbacks_total",
			Help: "Total number of requests answered with fallback data",
		},
		[]string{"request_type"},
	)

	IntelligenceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tara_intelligence_request_duration_seconds",
			Help: "Duration of intelligence-service requests in seconds",
		},
		[]string{"request_type"},
	)

	WorkflowOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tara_workflow_outcomes_total",
			Help: "Goal-creation workflow terminal outcomes",
		},
		[]string{"outcome"}, // finalized, needs_citizenship, aborted, cancelled
	)

	FeedFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tara_feed_fetches_total",
			Help: "Total number of feed fetches by source and result",
		},
		[]string{"source", "result"},
	)

	NewsItemsAggregated = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tara_news_items_aggregated",
			Help: "Number of items produced by the last aggregation run",
		},
	)
)
