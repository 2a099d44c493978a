// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters updated by Run.
type Metrics struct {
	enqueued   prometheus.Counter
	dequeued   prometheus.Counter
	fullWaits  prometheus.Counter
	emptyWaits prometheus.Counter
	length     prometheus.Gauge
	duration   prometheus.Histogram
}

// NewMetrics creates the pipeline metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		enqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chunkq",
			Subsystem: "pipeline",
			Name:      "enqueued_total",
			Help:      "Messages accepted by the queue.",
		}),
		dequeued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chunkq",
			Subsystem: "pipeline",
			Name:      "dequeued_total",
			Help:      "Messages removed from the queue.",
		}),
		fullWaits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chunkq",
			Subsystem: "pipeline",
			Name:      "full_waits_total",
			Help:      "Producer backoffs on a full queue.",
		}),
		emptyWaits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chunkq",
			Subsystem: "pipeline",
			Name:      "empty_waits_total",
			Help:      "Consumer backoffs on an empty queue.",
		}),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chunkq",
			Subsystem: "pipeline",
			Name:      "queue_length",
			Help:      "Queue length sampled by the consumer.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chunkq",
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Bucketed histogram of pipeline run time.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.enqueued, m.dequeued, m.fullWaits, m.emptyWaits, m.length, m.duration)
	}
	return m
}
