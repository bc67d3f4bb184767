package tfrec

import (
	"github.com/hupe1980/tfrec/codec"
)

// DefaultBufferSize is the size of the write buffer in front of the sink.
const DefaultBufferSize = 256 << 10

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	codec            codec.Codec
	writeManifest    bool
	bufferSize       int
	discardOnError   bool
}

// Option configures Writer, WriteDataset and ReadManifest.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		codec:            codec.Default,
		bufferSize:       DefaultBufferSize,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics sets the metrics collector. If nil is passed, metrics are discarded.
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithCodec configures the codec used for run manifests.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithManifest makes WriteDataset store the run manifest next to the output
// as "<name>.manifest.json".
func WithManifest() Option {
	return func(o *options) {
		o.writeManifest = true
	}
}

// WithBufferSize sets how many bytes of whole records are collected before
// they are written to the sink. A size <= 0 writes every frame straight
// through.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}

// WithDiscardOnError makes WriteDataset abort the sink when a row fails,
// so no partial file is published. By default rows before the failing one
// are kept.
func WithDiscardOnError() Option {
	return func(o *options) {
		o.discardOnError = true
	}
}
