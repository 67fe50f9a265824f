// Package metrics exposes prometheus counters for tournament mutations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cup_registration"

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeDenied   = "denied"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

// Recorder is safe to use as a nil pointer; every method is then a no-op.
type Recorder struct {
	mutations     *prometheus.CounterVec
	eventChanges  *prometheus.CounterVec
	compensations *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournament_mutations_total",
			Help:      "Tournament create and update requests by outcome.",
		}, []string{"operation", "outcome"}),
		eventChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_changes_total",
			Help:      "Event rows written by reconciliation, by kind.",
		}, []string{"kind"}),
		compensations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compensation_deletes_total",
			Help:      "Tournament rows removed after a failed event batch insert.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(r.mutations, r.eventChanges, r.compensations)
	return r
}

func (r *Recorder) Mutation(operation, outcome string) {
	if r == nil {
		return
	}
	r.mutations.WithLabelValues(operation, outcome).Inc()
}

func (r *Recorder) EventChanges(deleted, updated, inserted int) {
	if r == nil {
		return
	}
	r.eventChanges.WithLabelValues("delete").Add(float64(deleted))
	r.eventChanges.WithLabelValues("update").Add(float64(updated))
	r.eventChanges.WithLabelValues("insert").Add(float64(inserted))
}

func (r *Recorder) Compensation(err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	r.compensations.WithLabelValues(outcome).Inc()
}
