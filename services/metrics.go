package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	proposalsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "proposals_created_total",
		Help:      "Whitepaper proposals stored.",
	})
	proposalsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "proposals_rejected_total",
		Help:      "Whitepaper proposals refused before reaching the store.",
	}, []string{"reason"})
	statusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "proposal_status_transitions_total",
		Help:      "Status changes applied by operators.",
	}, []string{"to"})
)

func recordRejection(reason string) {
	proposalsRejected.WithLabelValues(reason).Inc()
}
