// SPDX-License-Identifier: MIT

package expr

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Observer receives engine events. Implementations must be safe for
// concurrent use.
type Observer interface {
	RuleApplied(operation, rule string)
	RuleDeclined(operation, rule string)
	CacheLookup(hit bool)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) RuleApplied(string, string)  {}
func (NopObserver) RuleDeclined(string, string) {}
func (NopObserver) CacheLookup(bool)            {}

// PrometheusObserver exports engine events as Prometheus counters.
type PrometheusObserver struct {
	applied  *prometheus.CounterVec // rule applications by operation and rule
	declined *prometheus.CounterVec // matched rules that declined to rewrite
	lookups  *prometheus.CounterVec // instance cache lookups by result
}

// NewPrometheusObserver creates the counters and registers them with reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	o := &PrometheusObserver{
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slhnet",
			Subsystem: "rewrite",
			Name:      "rules_applied_total",
			Help:      "Total rewrite rule applications",
		}, []string{"operation", "rule"}),

		declined: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slhnet",
			Subsystem: "rewrite",
			Name:      "rules_declined_total",
			Help:      "Total rewrite rules that matched but declined",
		}, []string{"operation", "rule"}),

		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slhnet",
			Subsystem: "instance_cache",
			Name:      "lookups_total",
			Help:      "Instance cache lookups by result (hit, miss)",
		}, []string{"result"}),
	}
	for _, c := range []prometheus.Collector{o.applied, o.declined, o.lookups} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register rewrite metrics")
		}
	}

	return o, nil
}

func (o *PrometheusObserver) RuleApplied(operation, rule string) {
	o.applied.WithLabelValues(operation, rule).Inc()
}

func (o *PrometheusObserver) RuleDeclined(operation, rule string) {
	o.declined.WithLabelValues(operation, rule).Inc()
}

func (o *PrometheusObserver) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	o.lookups.WithLabelValues(result).Inc()
}
