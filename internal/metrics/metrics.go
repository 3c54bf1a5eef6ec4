package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "codeninja"

const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"

	MembershipMember       = "member"
	MembershipNotMember    = "not_member"
	MembershipLookupFailed = "lookup_failed"

	CompletionOK     = "ok"
	CompletionFailed = "failed"
)

type Metrics struct {
	Deliveries       *prometheus.CounterVec
	Completions      *prometheus.CounterVec
	MembershipChecks *prometheus.CounterVec
	UpdatesTotal     prometheus.Counter
	HandlerPanics    prometheus.Counter
}

// New creates the bot counters and registers them with reg when it is not nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Response delivery attempts by strategy and outcome",
		}, []string{"strategy", "outcome"}),
		Completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_total",
			Help:      "Completion endpoint calls by result",
		}, []string{"result"}),
		MembershipChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "membership_checks_total",
			Help:      "Required channel membership checks by result",
		}, []string{"result"}),
		UpdatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telegram_updates_total",
			Help:      "Total telegram updates received",
		}),
		HandlerPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_panics_total",
			Help:      "Update handlers that panicked and were recovered",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Deliveries, m.Completions, m.MembershipChecks, m.UpdatesTotal, m.HandlerPanics)
	}
	return m
}
