package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "career_navigator"

// Outcome labels for Submissions.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeBusy    = "busy"
	OutcomeStale   = "stale"
)

// Metrics holds the collectors of one process. Each instance owns its registry
// so tests can create as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	Submissions     *prometheus.CounterVec
	SubmitDuration  prometheus.Histogram
	PathsReceived   prometheus.Histogram
	StrategyChanges *prometheus.CounterVec
	ResumesParsed   *prometheus.CounterVec
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Recommendation submissions by outcome",
			},
			[]string{"outcome"},
		),
		SubmitDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "submit_duration_seconds",
				Help:      "Duration of recommendation requests in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
			},
		),
		PathsReceived: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "paths_received",
				Help:      "Number of paths per successful response",
				Buckets:   prometheus.LinearBuckets(0, 2, 8),
			},
		),
		StrategyChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "strategy_changes_total",
				Help:      "Ranking strategy selections",
			},
			[]string{"strategy"},
		),
		ResumesParsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resumes_parsed_total",
				Help:      "Resume parse attempts by parser and outcome",
			},
			[]string{"parser", "outcome"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ResumeParsed counts one resume parse attempt. A nil receiver is a no-op.
func (m *Metrics) ResumeParsed(parser string, err error) {
	if m == nil {
		return
	}

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.ResumesParsed.WithLabelValues(parser, outcome).Inc()
}
