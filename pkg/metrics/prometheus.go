package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	scoresComputed    *prometheus.CounterVec
	fallbacksUsed     *prometheus.CounterVec
	bookingsCreated   prometheus.Counter
	conflictsRejected *prometheus.CounterVec
	latency           *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		scoresComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pawmatch_scores_computed_total",
				Help: "Total number of scoring runs by kind",
			},
			[]string{"kind"},
		),
		fallbacksUsed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pawmatch_insight_fallbacks_total",
				Help: "External-insight failures resolved by deterministic fallback",
			},
			[]string{"signal"},
		),
		bookingsCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pawmatch_bookings_created_total",
				Help: "Total number of bookings created",
			},
		),
		conflictsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pawmatch_conflicts_rejected_total",
				Help: "Booking operations rejected by conflict kind",
			},
			[]string{"kind"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pawmatch_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordScoreComputed records a completed scoring run.
func (r *Recorder) RecordScoreComputed(kind string) {
	r.scoresComputed.WithLabelValues(kind).Inc()
}

// RecordFallback records a deterministic fallback for a failed signal.
func (r *Recorder) RecordFallback(signal string) {
	r.fallbacksUsed.WithLabelValues(signal).Inc()
}

// RecordBookingCreated records a persisted booking.
func (r *Recorder) RecordBookingCreated() {
	r.bookingsCreated.Inc()
}

// RecordConflictRejected records a rejected booking operation.
func (r *Recorder) RecordConflictRejected(kind string) {
	r.conflictsRejected.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
