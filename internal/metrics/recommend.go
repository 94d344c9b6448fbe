package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recommendation outcomes.
const (
	OutcomeFound = "found"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Recommendation engine Prometheus metrics.
var (
	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommend_requests_total",
			Help:      "Recommendation strategy runs by outcome",
		},
		[]string{"strategy", "outcome"},
	)

	RecommendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_duration_seconds",
			Help:      "Recommendation strategy duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"strategy"},
	)

	SimilarCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "similar_candidates",
			Help:      "Candidate tracks scored per similar-track search",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 10),
		},
	)

	CatalogSampleDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_sample_duration_seconds",
			Help:      "Random catalog sample duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"sampler"},
	)

	CatalogSampleErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_sample_errors_total",
			Help:      "Failed random catalog samples",
		},
		[]string{"sampler"},
	)

	IndexTracks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_index_tracks",
			Help:      "Track ids in the sample index after the last sync",
		},
	)
)

var recommendMetricsRegistered bool

// RegisterRecommendMetrics registers the recommendation metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recommendMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendRequestsTotal)
	prometheus.MustRegister(RecommendDuration)
	prometheus.MustRegister(SimilarCandidates)
	prometheus.MustRegister(CatalogSampleDuration)
	prometheus.MustRegister(CatalogSampleErrorsTotal)
	prometheus.MustRegister(IndexTracks)
	recommendMetricsRegistered = true
}

// ObserveStrategy records one strategy run.
func ObserveStrategy(strategy, outcome string, elapsed time.Duration) {
	RecommendRequestsTotal.WithLabelValues(strategy, outcome).Inc()
	RecommendDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
}
