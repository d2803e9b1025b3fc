package observ

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersSubmitted counts successful order inserts per payment channel.
	OrdersSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_submitted_total",
			Help: "Total orders persisted, by payment channel",
		},
		[]string{"channel"},
	)

	// SubmitFailures counts refused or failed submissions.
	SubmitFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_submit_failures_total",
			Help: "Submission attempts that did not persist an order",
		},
		[]string{"reason"}, // validation | persistence
	)

	// StepTransitions counts state-machine movement through the funnel.
	StepTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_step_transitions_total",
			Help: "Checkout step transitions",
		},
		[]string{"direction", "outcome"}, // forward/back, ok/refused
	)
)
