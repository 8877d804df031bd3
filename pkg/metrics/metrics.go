package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

// Validation holds the counters of validation runs served by the API.
type Validation struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	findings *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewValidation() *Validation {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(registry)

	return &Validation{
		registry: registry,
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aif_validation_runs_total",
				Help: "Total number of validation runs by verdict",
			},
			[]string{"verdict"}, // valid or invalid
		),
		findings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aif_validation_findings_total",
				Help: "Total number of findings emitted by severity",
			},
			[]string{"severity"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "aif_validation_duration_seconds",
				Help:    "Duration of a validation run in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),
	}
}

func (v *Validation) Observe(summary *domain.ValidationSummary, elapsed time.Duration) {
	verdict := "invalid"
	if summary.IsValid {
		verdict = "valid"
	}
	v.runs.WithLabelValues(verdict).Inc()
	v.findings.WithLabelValues(string(domain.SeverityError)).Add(float64(len(summary.Errors)))
	v.findings.WithLabelValues(string(domain.SeverityWarning)).Add(float64(len(summary.Warnings)))
	v.findings.WithLabelValues(string(domain.SeverityInfo)).Add(float64(len(summary.InfoMessages)))
	v.duration.Observe(elapsed.Seconds())
}

func (v *Validation) Handler() http.Handler {
	return promhttp.HandlerFor(v.registry, promhttp.HandlerOpts{Registry: v.registry})
}
