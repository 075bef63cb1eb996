package saver

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors of a saver. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	enqueuedTotal prometheus.Counter
	rejectedTotal prometheus.Counter
	storedTotal   prometheus.Counter
	failedTotal   prometheus.Counter
	flushesTotal  *prometheus.CounterVec
	flushDuration prometheus.Histogram
	batchItems    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		enqueuedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "saver",
			Name:      "items_enqueued_total",
			Help:      "Items accepted into the queue.",
		}),
		rejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "saver",
			Name:      "items_rejected_total",
			Help:      "Items rejected because the queue was full or the worker stopped.",
		}),
		storedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "saver",
			Name:      "items_stored_total",
			Help:      "Items written to storage.",
		}),
		failedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "saver",
			Name:      "items_failed_total",
			Help:      "Items dropped after a storage failure.",
		}),
		flushesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "saver",
			Name:      "flushes_total",
			Help:      "Batch flushes by trigger.",
		}, []string{"trigger"}),
		flushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "saver",
			Name:      "flush_duration_seconds",
			Help:      "Time spent flushing a batch.",
			Buckets:   prometheus.DefBuckets,
		}),
		batchItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "saver",
			Name:      "batch_items",
			Help:      "Items buffered in the current batch.",
		}),
	}

	if reg == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{
		m.enqueuedTotal, m.rejectedTotal, m.storedTotal, m.failedTotal,
		m.flushesTotal, m.flushDuration, m.batchItems,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("saver: register metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) enqueued() {
	if m != nil {
		m.enqueuedTotal.Inc()
	}
}

func (m *Metrics) rejected() {
	if m != nil {
		m.rejectedTotal.Inc()
	}
}

func (m *Metrics) setBatch(n int) {
	if m != nil {
		m.batchItems.Set(float64(n))
	}
}

func (m *Metrics) observeFlush(trigger string, stored, failed int, d time.Duration) {
	if m == nil {
		return
	}
	m.storedTotal.Add(float64(stored))
	m.failedTotal.Add(float64(failed))
	m.flushesTotal.WithLabelValues(trigger).Inc()
	m.flushDuration.Observe(d.Seconds())
}
