// Package metrics exposes assessment results as Prometheus metrics on a
// per-run registry, written out in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

const (
	metricsNamespace = "devops_maturity"
	TextfileName     = "metrics.prom"
)

// Metrics implements analyze.Observer and records the final assessment.
type Metrics struct {
	reg *prometheus.Registry

	VerdictsTotal     *prometheus.CounterVec
	DomainSkipsTotal  *prometheus.CounterVec
	DomainDuration    *prometheus.HistogramVec
	OverallScore      prometheus.Gauge
	CategoryPercent   *prometheus.GaugeVec
	ReposAssessed     prometheus.Gauge
	DORALevel         *prometheus.GaugeVec
	SLSALevel         prometheus.Gauge
	OpenSSFSatisfied  prometheus.Gauge
	AssessmentSeconds prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		VerdictsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "verdicts_total",
				Help:      "Verdicts produced by category and status",
			},
			[]string{"category", "status"},
		),
		DomainSkipsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "domain_skips_total",
				Help:      "Domain evaluations that panicked and were skipped",
			},
			[]string{"domain"},
		),
		DomainDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "domain_evaluation_seconds",
				Help:      "Time spent evaluating one domain for one subject",
				Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
			[]string{"domain"},
		),
		OverallScore: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "overall_score",
			Help:      "Weighted overall maturity score, 0-100",
		}),
		CategoryPercent: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "category_percentage",
				Help:      "Category score as a percentage of its maximum",
			},
			[]string{"category"},
		),
		ReposAssessed: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "repositories",
			Help:      "Repositories included in the assessment",
		}),
		DORALevel: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "dora_level",
				Help:      "1 for the DORA performance level reached",
			},
			[]string{"level"},
		),
		SLSALevel: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "slsa_level",
			Help:      "SLSA build level reached, 0-3",
		}),
		OpenSSFSatisfied: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "openssf_satisfied",
			Help:      "OpenSSF Scorecard categories satisfied",
		}),
		AssessmentSeconds: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "assessment_duration_seconds",
			Help:      "Wall time of the assessment",
		}),
	}
}

// Registry exposes the per-run registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) ObserveDomain(domain string, d time.Duration) {
	m.DomainDuration.WithLabelValues(domain).Observe(d.Seconds())
}

func (m *Metrics) DomainSkipped(domain string) {
	m.DomainSkipsTotal.WithLabelValues(domain).Inc()
}

// RecordAssessment sets the result gauges and counts every verdict.
func (m *Metrics) RecordAssessment(a *model.Assessment) {
	for _, v := range a.Verdicts() {
		m.VerdictsTotal.WithLabelValues(string(v.Check.Category), string(v.Status)).Inc()
	}
	m.OverallScore.Set(a.Overall)
	for c, s := range a.Categories {
		m.CategoryPercent.WithLabelValues(string(c)).Set(s.Percentage())
	}
	m.ReposAssessed.Set(float64(len(a.Repos)))
	if a.Benchmarks.DORA.Level != "" {
		m.DORALevel.WithLabelValues(a.Benchmarks.DORA.Level).Set(1)
	}
	m.SLSALevel.Set(float64(a.Benchmarks.SLSA.Level))
	n := 0
	for _, ok := range a.Benchmarks.OpenSSF {
		if ok {
			n++
		}
	}
	m.OpenSSFSatisfied.Set(float64(n))
	m.AssessmentSeconds.Set(a.Scan.EndedAt.Sub(a.Scan.StartedAt).Seconds())
}

// WriteTextfile writes the registry to <outDir>/metrics.prom and returns the path.
func (m *Metrics) WriteTextfile(outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, TextfileName)
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return "", fmt.Errorf("write metrics: %w", err)
	}
	return path, nil
}
