// Package prometheus provides a metrics.Collector backed by
// github.com/prometheus/client_golang.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cachekit/cachesemantics/wrapper/metrics"
)

// Collector implements metrics.Collector by recording to two Prometheus
// vectors: a request counter and a duration histogram.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Config configures a Collector's registration.
type Config struct {
	// Registry is the registerer to use. Defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
	// Namespace prefixes all metric names. Defaults to "cachesemantics".
	Namespace string
}

// NewCollector creates a Collector with default configuration.
func NewCollector() *Collector {
	return NewCollectorWithConfig(Config{})
}

// NewCollectorWithConfig creates a Collector using cfg.
func NewCollectorWithConfig(cfg Config) *Collector {
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "cachesemantics"
	}
	factory := promauto.With(cfg.Registry)

	return &Collector{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "store_operations_total",
			Help:      "Total number of store operations by operation, backend, and result.",
		}, []string{"operation", "backend", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Store operation duration in seconds.",
		}, []string{"operation", "backend"}),
	}
}

// RecordOperation implements metrics.Collector.
func (c *Collector) RecordOperation(operation, backend, result string, duration time.Duration) {
	c.requests.WithLabelValues(operation, backend, result).Inc()
	c.duration.WithLabelValues(operation, backend).Observe(duration.Seconds())
}

var _ metrics.Collector = (*Collector)(nil)
