package tfrec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// prommetrics package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordRow is called after each row append.
	// bytes is the framed size written, err is nil if successful.
	RecordRow(bytes int, duration time.Duration, err error)

	// RecordRun is called once per WriteDataset call.
	// rows is the number of rows written before any failure.
	RecordRun(rows int, bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRow(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordRun(int, int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	RowCount      atomic.Int64
	RowErrors     atomic.Int64
	RowBytes      atomic.Int64
	RowTotalNanos atomic.Int64
	RunCount      atomic.Int64
	RunErrors     atomic.Int64
	RunRows       atomic.Int64
	RunBytes      atomic.Int64
}

// RecordRow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRow(bytes int, duration time.Duration, err error) {
	b.RowCount.Add(1)
	b.RowBytes.Add(int64(bytes))
	b.RowTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RowErrors.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(rows int, bytes int64, _ time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunRows.Add(int64(rows))
	b.RunBytes.Add(bytes)
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RowCount:    b.RowCount.Load(),
		RowErrors:   b.RowErrors.Load(),
		RowBytes:    b.RowBytes.Load(),
		RowAvgNanos: b.getAvgRowNanos(),
		RunCount:    b.RunCount.Load(),
		RunErrors:   b.RunErrors.Load(),
		RunRows:     b.RunRows.Load(),
		RunBytes:    b.RunBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRowNanos() int64 {
	count := b.RowCount.Load()
	if count == 0 {
		return 0
	}
	return b.RowTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RowCount    int64
	RowErrors   int64
	RowBytes    int64
	RowAvgNanos int64
	RunCount    int64
	RunErrors   int64
	RunRows     int64
	RunBytes    int64
}
