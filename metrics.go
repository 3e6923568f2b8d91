package client

import (
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Poll attempt outcomes.
const (
	outcomePending        = "pending"
	outcomeFinished       = "finished"
	outcomeClientError    = "client_error"
	outcomeTransportError = "transport_error"
	outcomeInterrupted    = "interrupted"
)

// Metrics collects polling metrics. A nil *Metrics records nothing.
type Metrics struct {
	PollAttempts *prometheus.CounterVec
	PollResults  *prometheus.CounterVec
	PollWait     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PollAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ServiceName,
			Name:      "poll_attempts_total",
			Help:      "Poll requests issued, by outcome.",
		}, []string{"outcome"}),
		PollResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ServiceName,
			Name:      "poll_results_total",
			Help:      "Blocking waits on asynchronous operations, by result.",
		}, []string{"result"}),
		PollWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ServiceName,
			Name:      "poll_wait_seconds",
			Help:      "Time spent waiting for asynchronous operations.",
			Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 300, 900, 1800},
		}),
	}

	if reg != nil {
		reg.MustRegister(m.PollAttempts, m.PollResults, m.PollWait)
	}
	return m
}

func (m *Metrics) observeAttempt(outcome string) {
	if m == nil {
		return
	}
	m.PollAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeWait(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.PollResults.WithLabelValues(result).Inc()
	m.PollWait.Observe(elapsed.Seconds())
}

// resultLabel maps a wait error to a result label.
func resultLabel(err error) string {
	if err == nil {
		return "done"
	}
	var pollErr *PollError
	if errors.As(err, &pollErr) {
		return strings.ReplaceAll(pollErr.Kind.String(), " ", "_")
	}
	return "handler_error"
}
