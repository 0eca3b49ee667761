// Package metrics records the outcome of an index build as Prometheus gauges
// and writes them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/milden6/gaddag"
)

// Metrics holds the build gauges and the registry they are registered with.
type Metrics struct {
	registry *prometheus.Registry

	WordsEncodable            prometheus.Gauge
	WordsUnencodable          prometheus.Gauge
	ScoringPatterns           prometheus.Gauge
	ScoringPatternsGaddagized prometheus.Gauge
	Nodes                     *prometheus.GaugeVec
	Edges                     *prometheus.GaugeVec
	IndexBytes                *prometheus.GaugeVec
	BuildDuration             prometheus.Gauge
}

// New creates the gauges on a private registry, so several builds in one
// process do not collide.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		WordsEncodable: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gaddag_words_encodable",
				Help: "Number of input words encoded with the alphabet.",
			},
		),
		WordsUnencodable: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gaddag_words_unencodable",
				Help: "Number of input words left out of the index.",
			},
		),
		ScoringPatterns: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gaddag_scoring_patterns",
				Help: "Number of distinct scoring patterns.",
			},
		),
		ScoringPatternsGaddagized: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gaddag_scoring_patterns_gaddagized",
				Help: "Number of scoring pattern arcs.",
			},
		),
		Nodes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gaddag_nodes",
				Help: "Number of nodes per index.",
			},
			[]string{"index"},
		),
		Edges: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gaddag_edges",
				Help: "Number of edges per index.",
			},
			[]string{"index"},
		),
		IndexBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gaddag_index_bytes",
				Help: "Serialized size of each index in bytes.",
			},
			[]string{"index"},
		),
		BuildDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gaddag_build_duration_seconds",
				Help: "Wall time of the whole build in seconds.",
			},
		),
	}

	m.registry.MustRegister(
		m.WordsEncodable,
		m.WordsUnencodable,
		m.ScoringPatterns,
		m.ScoringPatternsGaddagized,
		m.Nodes,
		m.Edges,
		m.IndexBytes,
		m.BuildDuration,
	)

	return m
}

// Observe sets every gauge from a build report.
func (m *Metrics) Observe(r gaddag.Report, elapsed time.Duration) {
	m.WordsEncodable.Set(float64(r.EncodableWords))
	m.WordsUnencodable.Set(float64(r.UnencodableWords))
	m.ScoringPatterns.Set(float64(r.ScoringPatterns))
	m.ScoringPatternsGaddagized.Set(float64(r.GaddagizedScoringPatterns))

	m.Nodes.WithLabelValues("words").Set(float64(r.WordNodes))
	m.Nodes.WithLabelValues("scoring").Set(float64(r.ScoringNodes))
	m.Edges.WithLabelValues("words").Set(float64(r.WordEdges))
	m.Edges.WithLabelValues("scoring").Set(float64(r.ScoringEdges))
	m.IndexBytes.WithLabelValues("words").Set(float64(r.WordIndexBytes))
	m.IndexBytes.WithLabelValues("scoring").Set(float64(r.ScoringIndexBytes))

	m.BuildDuration.Set(elapsed.Seconds())
}

// Registry returns the registry holding the gauges.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the gauges to path. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
