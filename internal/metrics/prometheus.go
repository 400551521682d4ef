package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements Recorder with Prometheus collectors.
type Prometheus struct {
	generated *prometheus.CounterVec
	failed    *prometheus.CounterVec
	players   prometheus.Histogram
	tables    prometheus.Gauge
}

// NewPrometheus registers the collectors on reg (the default registerer
// when nil) under namespace ("scythe" when empty).
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "scythe"
	}

	p := &Prometheus{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "setups_generated_total",
			Help:      "Setups generated, by mode (solo or multi).",
		}, []string{"mode"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "setup_errors_total",
			Help:      "Rejected setup requests, by failure kind.",
		}, []string{"kind"}),
		players: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "setup_players",
			Help:      "Player count of generated setups.",
			Buckets:   prometheus.LinearBuckets(1, 1, 7),
		}),
		tables: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tables_active",
			Help:      "Shared tables currently open.",
		}),
	}
	for _, c := range []prometheus.Collector{p.generated, p.failed, p.players, p.tables} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) SetupGenerated(players int) {
	mode := "multi"
	if players == 1 {
		mode = "solo"
	}
	p.generated.WithLabelValues(mode).Inc()
	p.players.Observe(float64(players))
}

func (p *Prometheus) SetupFailed(kind string) {
	p.failed.WithLabelValues(kind).Inc()
}

func (p *Prometheus) TableOpened() { p.tables.Inc() }
func (p *Prometheus) TableClosed() { p.tables.Dec() }

var _ Recorder = (*Prometheus)(nil)
