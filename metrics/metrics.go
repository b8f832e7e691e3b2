// Package metrics wires an optional Prometheus recorder into the
// mutating operations of bloomset and bloommap (Add/Put/Clear), grounded
// on dd0wney-graphdb's prometheus/client_golang + client_model
// dependency. A nil *Recorder is always safe to use: every method is a
// no-op guard around a possibly-absent recorder.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder counts mutating calls and tracks fill ratio for a family of
// BloomSet/BloomMap instances sharing one label.
type Recorder struct {
	mutations *prometheus.CounterVec
	fillRatio *prometheus.GaugeVec
}

// NewRecorder registers its collectors against reg and returns a
// Recorder. Pass a nil *Recorder (not the result of NewRecorder) to any
// caller that wants metrics disabled.
func NewRecorder(reg prometheus.Registerer, namespace string) *Recorder {
	r := &Recorder{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Count of mutating BloomSet/BloomMap operations by kind and structure name.",
		}, []string{"structure", "op"}),
		fillRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fill_ratio",
			Help:      "Fraction of set bits / non-bottom cells, by structure name.",
		}, []string{"structure"}),
	}
	reg.MustRegister(r.mutations, r.fillRatio)
	return r
}

// Mutation increments the mutation counter for (structure, op). Safe to
// call on a nil Recorder.
func (r *Recorder) Mutation(structure, op string) {
	if r == nil {
		return
	}
	r.mutations.WithLabelValues(structure, op).Inc()
}

// FillRatio sets the current fill ratio gauge for structure. Safe to
// call on a nil Recorder.
func (r *Recorder) FillRatio(structure string, ratio float64) {
	if r == nil {
		return
	}
	r.fillRatio.WithLabelValues(structure).Set(ratio)
}
