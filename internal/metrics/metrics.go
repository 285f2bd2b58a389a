// Package metrics holds the Prometheus counters recorded while resolving
// identifiers and decoding SBOMs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rosettabom"

// Metrics owns a private registry so several resolvers can coexist in one
// process (and in parallel tests) without colliding on the default registry.
type Metrics struct {
	Registry *prometheus.Registry

	Extractions *prometheus.CounterVec // by format
	Failures    *prometheus.CounterVec // by error kind
	Comparisons *prometheus.CounterVec // by outcome
	Packages    *prometheus.CounterVec // SBOM packages by status
}

// New creates and registers all counters.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Identifiers successfully extracted, by detected format.",
		}, []string{"format"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_failures_total",
			Help:      "Identifiers that could not be extracted, by error kind.",
		}, []string{"kind"}),
		Comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Pairwise identifier comparisons, by outcome.",
		}, []string{"outcome"}),
		Packages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sbom_packages_total",
			Help:      "SBOM packages processed, by status.",
		}, []string{"status"}),
	}
	m.Registry.MustRegister(m.Extractions, m.Failures, m.Comparisons, m.Packages)
	return m
}

// WriteFile dumps the current counter values in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
