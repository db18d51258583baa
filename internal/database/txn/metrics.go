// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package txn

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "juju_sqlduration_txn"

const (
	resultCommit   = "commit"
	resultRollback = "rollback"
	resultError    = "error"
)

// Collector is a prometheus.Collector that collects metrics about
// transactions run by a RetryingTxnRunner.
type Collector struct {
	txns     *prometheus.CounterVec
	retries  prometheus.Counter
	duration prometheus.Histogram
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	return &Collector{
		txns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "total",
				Help:      "The number of transactions, partitioned by result.",
			}, []string{"result"},
		),
		retries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "retries_total",
				Help:      "The number of times a transaction was retried.",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "duration_seconds",
				Help:      "The time taken to run a transaction.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.txns.Describe(ch)
	c.retries.Describe(ch)
	c.duration.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.txns.Collect(ch)
	c.retries.Collect(ch)
	c.duration.Collect(ch)
}

func (c *Collector) observe(result string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.txns.WithLabelValues(result).Inc()
	c.duration.Observe(elapsed.Seconds())
}

func (c *Collector) retried() {
	if c == nil {
		return
	}
	c.retries.Inc()
}
