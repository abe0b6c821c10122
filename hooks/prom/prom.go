// Package promhook exports store events as Prometheus counters.
package promhook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/unkn0wn-root/binser/store"
)

// Hooks counts events per store namespace. Storage keys never become labels,
// so series grow with the number of stores, not with the number of keys.
type Hooks struct {
	selfHeal       *prometheus.CounterVec
	setRejected    *prometheus.CounterVec
	providerErrors *prometheus.CounterVec
}

var _ store.Hooks = (*Hooks)(nil)

// New registers the counters with reg; nil means the default registerer.
func New(reg prometheus.Registerer) *Hooks {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Hooks{
		selfHeal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "binser_store_self_heal_total",
				Help: "Entries deleted on read because they were corrupt or undecodable",
			},
			[]string{"namespace", "reason"},
		),
		setRejected: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "binser_store_set_rejected_total",
				Help: "Writes the provider refused under pressure",
			},
			[]string{"namespace"},
		),
		providerErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "binser_store_provider_errors_total",
				Help: "Failed provider calls",
			},
			[]string{"namespace", "op"},
		),
	}
}

func (h *Hooks) SelfHeal(ns, _, reason string) {
	h.selfHeal.WithLabelValues(ns, reason).Inc()
}

func (h *Hooks) ProviderSetRejected(ns, _ string) {
	h.setRejected.WithLabelValues(ns).Inc()
}

func (h *Hooks) ProviderError(ns, op, _ string, _ error) {
	h.providerErrors.WithLabelValues(ns, op).Inc()
}
