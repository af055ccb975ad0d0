package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector tracks balance-moving operations on a private registry.
type Collector struct {
	registry        *prometheus.Registry
	transfersTotal  prometheus.Counter
	transfersFailed prometheus.Counter
	depositsTotal   prometheus.Counter
	depositsFailed  prometheus.Counter
	centsMovedTotal prometheus.Counter
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	return &Collector{
		registry: registry,
		transfersTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "transfers_total",
			Help: "Total number of completed transfers",
		}),
		transfersFailed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "transfers_failed_total",
			Help: "Total number of rejected or failed transfers",
		}),
		depositsTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "deposits_total",
			Help: "Total number of completed admin deposits",
		}),
		depositsFailed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "deposits_failed_total",
			Help: "Total number of rejected or failed admin deposits",
		}),
		centsMovedTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "cents_moved_total",
			Help: "Sum of minor-unit amounts moved by completed operations",
		}),
	}
}

func (c *Collector) RecordTransfer(amountCents int64, success bool) {
	if success {
		c.transfersTotal.Inc()
		c.centsMovedTotal.Add(float64(amountCents))
		return
	}
	c.transfersFailed.Inc()
}

func (c *Collector) RecordDeposit(amountCents int64, success bool) {
	if success {
		c.depositsTotal.Inc()
		c.centsMovedTotal.Add(float64(amountCents))
		return
	}
	c.depositsFailed.Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
