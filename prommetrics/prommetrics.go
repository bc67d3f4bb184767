// Package prommetrics exports tfrec writer metrics to Prometheus.
package prommetrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/tfrec"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "tfrec"

var _ tfrec.MetricsCollector = (*Collector)(nil)

// Collector implements tfrec.MetricsCollector on Prometheus metrics.
type Collector struct {
	rows        *prometheus.CounterVec
	rowBytes    prometheus.Counter
	rowLatency  prometheus.Histogram
	runs        *prometheus.CounterVec
	runLatency  prometheus.Histogram
	lastRunRows prometheus.Gauge
	lastRunSize prometheus.Gauge
}

// NewCollector registers the writer metrics with reg under namespace.
// A nil reg uses the default registerer.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Collector{
		rows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Rows passed to the writer, by outcome",
		}, []string{"status"}),
		rowBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "row_bytes_total",
			Help:      "Bytes appended to record files, framing included",
		}),
		rowLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "row_latency_seconds",
			Help:      "Time to encode and append one row",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
		}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Dataset writes, by outcome",
		}, []string{"status"}),
		runLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_latency_seconds",
			Help:      "Time to write a whole dataset",
			Buckets:   prometheus.DefBuckets,
		}),
		lastRunRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_rows",
			Help:      "Rows written by the most recent dataset write",
		}),
		lastRunSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_bytes",
			Help:      "Bytes written by the most recent dataset write",
		}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordRow implements tfrec.MetricsCollector.
func (c *Collector) RecordRow(bytes int, d time.Duration, err error) {
	c.rows.WithLabelValues(status(err)).Inc()
	c.rowBytes.Add(float64(bytes))
	c.rowLatency.Observe(d.Seconds())
}

// RecordRun implements tfrec.MetricsCollector.
func (c *Collector) RecordRun(rows int, bytes int64, d time.Duration, err error) {
	c.runs.WithLabelValues(status(err)).Inc()
	c.runLatency.Observe(d.Seconds())
	c.lastRunRows.Set(float64(rows))
	c.lastRunSize.Set(float64(bytes))
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
