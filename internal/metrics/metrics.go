// Package metrics exposes Prometheus instrumentation for sessions,
// grading and the daily streak.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	ExercisesLoaded  prometheus.Counter
	Submissions      *prometheus.CounterVec
	Gradings         *prometheus.CounterVec
	RemoteFailures   *prometheus.CounterVec
	ScorePercentage  prometheus.Histogram
	DailyCompletions prometheus.Counter
	Streak           prometheus.Gauge
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ExercisesLoaded: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lexis",
			Name:      "exercises_loaded_total",
			Help:      "Exercises accepted by a session.",
		}),
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lexis",
			Name:      "submissions_total",
			Help:      "Submissions emitted, by trigger.",
		}, []string{"trigger"}),
		Gradings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lexis",
			Name:      "gradings_total",
			Help:      "Graded results produced, by source.",
		}, []string{"source"}),
		RemoteFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lexis",
			Name:      "remote_grading_failures_total",
			Help:      "Remote grading attempts that fell back to offline grading.",
		}, []string{"reason"}),
		ScorePercentage: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lexis",
			Name:      "score_percentage",
			Help:      "Distribution of graded percentages.",
			Buckets:   []float64{30, 40, 55, 70, 80, 90, 100},
		}),
		DailyCompletions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lexis",
			Name:      "daily_completions_total",
			Help:      "Daily challenges completed.",
		}),
		Streak: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "lexis",
			Name:      "daily_streak",
			Help:      "Current daily streak.",
		}),
	}
}

// ObserveLoad records an accepted exercise.
func (m *Metrics) ObserveLoad() {
	if m == nil {
		return
	}
	m.ExercisesLoaded.Inc()
}

// ObserveSubmission records a submission by trigger ("learner" or "timer").
func (m *Metrics) ObserveSubmission(trigger string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(trigger).Inc()
}

// ObserveGrading records a graded result.
func (m *Metrics) ObserveGrading(source string, percentage float64) {
	if m == nil {
		return
	}
	m.Gradings.WithLabelValues(source).Inc()
	m.ScorePercentage.Observe(percentage)
}

// ObserveRemoteFailure records a fallback to offline grading.
func (m *Metrics) ObserveRemoteFailure(reason string) {
	if m == nil {
		return
	}
	m.RemoteFailures.WithLabelValues(reason).Inc()
}

// ObserveDaily records a completed daily challenge and the resulting streak.
func (m *Metrics) ObserveDaily(streak int) {
	if m == nil {
		return
	}
	m.DailyCompletions.Inc()
	m.Streak.Set(float64(streak))
}

// SetStreak updates the streak gauge without counting a completion.
func (m *Metrics) SetStreak(streak int) {
	if m == nil {
		return
	}
	m.Streak.Set(float64(streak))
}
