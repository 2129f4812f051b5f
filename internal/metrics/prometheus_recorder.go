package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	exampleDuration *prom.HistogramVec
	exampleOutcomes *prom.CounterVec
	runDuration     prom.Histogram
	discovered      prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.exampleDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "exrunner",
			Name:      "example_duration_seconds",
			Help:      "Wall time of a single build tool invocation",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"example", "outcome"})
		pr.exampleOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "exrunner",
			Name:      "example_outcomes_total",
			Help:      "Example invocations by outcome",
		}, []string{"outcome"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "exrunner",
			Name:      "run_duration_seconds",
			Help:      "Total duration of a pass over the examples directory",
			Buckets:   prom.ExponentialBuckets(1, 2, 10),
		})
		pr.discovered = prom.NewGauge(prom.GaugeOpts{
			Namespace: "exrunner",
			Name:      "examples_discovered",
			Help:      "Examples discovered by the last pass",
		})
		reg.MustRegister(pr.exampleDuration, pr.exampleOutcomes, pr.runDuration, pr.discovered)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveExampleDuration(name string, d time.Duration, outcome Outcome) {
	if p == nil || p.exampleDuration == nil {
		return
	}
	p.exampleDuration.WithLabelValues(name, string(outcome)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncExampleOutcome(outcome Outcome) {
	if p == nil || p.exampleOutcomes == nil {
		return
	}
	p.exampleOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetExamplesDiscovered(n int) {
	if p == nil || p.discovered == nil {
		return
	}
	p.discovered.Set(float64(n))
}
