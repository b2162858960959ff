package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hamed0406/urlpinger/internal/domain"
)

const namespace = "urlpinger"

// Collector records every ping and every batch.
type Collector struct {
	pings   *prometheus.CounterVec
	latency *prometheus.HistogramVec
	batches *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		pings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pings_total",
			Help:      "Pings by strategy and outcome (ok or failure cause).",
		}, []string{"strategy", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ping_duration_seconds",
			Help:      "Latency of a single ping.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy"}),
		batches: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of a whole batch.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"strategy"}),
	}
	for _, col := range []prometheus.Collector{c.pings, c.latency, c.batches} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) ObservePing(s domain.Strategy, r domain.PingResult) {
	outcome := "ok"
	if !r.Reachable() {
		outcome = string(r.Cause)
	}
	c.pings.WithLabelValues(s.String(), outcome).Inc()
	c.latency.WithLabelValues(s.String()).Observe(r.Duration.Seconds())
}

func (c *Collector) ObserveBatch(s domain.Strategy, _ int, elapsed time.Duration) {
	c.batches.WithLabelValues(s.String()).Observe(elapsed.Seconds())
}
