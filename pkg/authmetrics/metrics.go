// Package authmetrics exports reconciler events as Prometheus metrics.
package authmetrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/memberauth/pkg/sessionauth"
)

const namespace = "memberauth"

// Observer counts sessionauth events. Register it with a prometheus.Registerer
// and pass it to sessionauth.WithObserver.
type Observer struct {
	events *prometheus.CounterVec
}

// New creates an Observer and registers its collectors with reg.
// A nil reg skips registration.
func New(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Authentication decisions by kind, login mode, source and outcome.",
		}, []string{"kind", "mode", "source", "outcome"}),
	}
	if reg != nil {
		if err := reg.Register(o.events); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Observer) Observe(_ context.Context, e sessionauth.Event) {
	o.events.WithLabelValues(string(e.Kind), e.Mode.String(), string(e.Source), outcome(e.Err)).Inc()
}

// Collector exposes the underlying collector, mainly for tests.
func (o *Observer) Collector() prometheus.Collector {
	return o.events
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case sessionauth.IsAuthFailure(err):
		return "rejected"
	default:
		return "error"
	}
}
