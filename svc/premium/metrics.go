package premium

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/premiumkit/pkg/paywall"
)

const (
	outcomeOK            = "ok"
	outcomeError         = "error"
	outcomeCanceled      = "canceled"
	outcomeSimulated     = "simulated"
	outcomeNotConfigured = "not_configured"
)

// Metrics is the Prometheus instrumentation of a Manager.
// A nil *Metrics records nothing.
type Metrics struct {
	operations   *prometheus.CounterVec
	statusGauge  prometheus.Gauge
	variantGauge prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "premium",
				Name:      "operations_total",
				Help:      "Coordinator operations by name and outcome",
			},
			[]string{"operation", "outcome"},
		),
		statusGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "premium",
			Name:      "status",
			Help:      "Last published premium status (1 premium, 0 not premium)",
		}),
		variantGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "premium",
			Name:      "paywall_variant",
			Help:      "Code of the last published paywall variant",
		}),
	}
	m.variantGauge.Set(float64(paywall.Fallback))

	if reg != nil {
		reg.MustRegister(m.operations, m.statusGauge, m.variantGauge)
	}
	return m
}

func (m *Metrics) operation(op, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) premium(v bool) {
	if m == nil {
		return
	}
	if v {
		m.statusGauge.Set(1)
	} else {
		m.statusGauge.Set(0)
	}
}

func (m *Metrics) variant(v paywall.Variant) {
	if m == nil {
		return
	}
	m.variantGauge.Set(float64(v))
}
