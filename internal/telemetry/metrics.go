// Package telemetry exposes classification, generation and trust activity as Prometheus
// metrics. A Metrics value plugs into the classifier, generator and verifier as their
// recorder or observer.
package telemetry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielpatrickdp/lattice-stage/internal/generator"
	"github.com/danielpatrickdp/lattice-stage/internal/verifier"
)

const namespace = "lattice"

// Metrics holds the collectors. All methods are safe for concurrent use.
type Metrics struct {
	// Classifications counts analyses by resulting family. Labels: category, id.
	Classifications *prometheus.CounterVec
	// Generations counts generate calls. Labels: id, outcome (ok, configuration, geometry, error).
	Generations *prometheus.CounterVec
	// Audits counts verifier audits by trust action. Labels: action.
	Audits *prometheus.CounterVec
	// Trust is the latest trust per session. Labels: session.
	Trust *prometheus.GaugeVec
	// Angle observes the first-pair angle of each audited snapshot.
	Angle prometheus.Histogram
	// SignatureMatches counts audits whose history matched an actor. Labels: protocol.
	SignatureMatches *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classifier",
			Name:      "classifications_total",
			Help:      "Classifications by resulting family",
		}, []string{"category", "id"}),
		Generations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "generations_total",
			Help:      "Generate calls by category id and outcome",
		}, []string{"id", "outcome"}),
		Audits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verifier",
			Name:      "audits_total",
			Help:      "Snapshot audits by trust action",
		}, []string{"action"}),
		Trust: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "verifier",
			Name:      "trust",
			Help:      "Latest trust per session",
		}, []string{"session"}),
		Angle: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "verifier",
			Name:      "first_pair_angle_degrees",
			Help:      "Angle between the first two vectors of each audited snapshot",
			Buckets:   prometheus.LinearBuckets(0, 15, 13),
		}),
		SignatureMatches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verifier",
			Name:      "signature_matches_total",
			Help:      "Audits whose session history matched a known actor",
		}, []string{"protocol"}),
	}
}

// ObserveClassification implements classifier.Recorder.
func (m *Metrics) ObserveClassification(category string, id int) {
	m.Classifications.WithLabelValues(category, strconv.Itoa(id)).Inc()
}

// ObserveGeneration implements generator.Recorder.
func (m *Metrics) ObserveGeneration(id int, err error) {
	m.Generations.WithLabelValues(strconv.Itoa(id), outcome(err)).Inc()
}

// ObserveAudit implements verifier.Observer.
func (m *Metrics) ObserveAudit(a verifier.Audit) {
	m.Audits.WithLabelValues(string(a.Action)).Inc()
	m.Trust.WithLabelValues(a.SessionID).Set(a.Trust)
	m.Angle.Observe(a.Angle)
	if a.Protocol != "" && a.Protocol != "Unknown Actor" {
		m.SignatureMatches.WithLabelValues(a.Protocol).Inc()
	}
}

// Handler serves the metrics in g. A nil g serves the default gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, generator.ErrConfiguration):
		return "configuration"
	case errors.Is(err, generator.ErrGeometry):
		return "geometry"
	default:
		return "error"
	}
}
