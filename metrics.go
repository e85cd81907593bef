package spectral

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    encodeCounter   prometheus.Counter
//	    decodeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordEncode(duration time.Duration, err error) {
//	    p.encodeCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordEncode is called after each encode operation.
	// duration is the total time taken, err is nil if successful.
	RecordEncode(duration time.Duration, err error)

	// RecordDecode is called after each decode operation, including
	// manifest-less decodes.
	RecordDecode(duration time.Duration, err error)

	// RecordDetect is called after each plan-detection decode.
	RecordDetect(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEncode(time.Duration, error) {}
func (NoopMetricsCollector) RecordDecode(time.Duration, error) {}
func (NoopMetricsCollector) RecordDetect(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EncodeCount      atomic.Int64
	EncodeErrors     atomic.Int64
	EncodeTotalNanos atomic.Int64
	DecodeCount      atomic.Int64
	DecodeErrors     atomic.Int64
	DecodeTotalNanos atomic.Int64
	DetectCount      atomic.Int64
	DetectErrors     atomic.Int64
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(duration time.Duration, err error) {
	b.EncodeCount.Add(1)
	b.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EncodeErrors.Add(1)
	}
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(duration time.Duration, err error) {
	b.DecodeCount.Add(1)
	b.DecodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DecodeErrors.Add(1)
	}
}

// RecordDetect implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDetect(duration time.Duration, err error) {
	b.DetectCount.Add(1)
	if err != nil {
		b.DetectErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EncodeCount:    b.EncodeCount.Load(),
		EncodeErrors:   b.EncodeErrors.Load(),
		EncodeAvgNanos: avgNanos(b.EncodeTotalNanos.Load(), b.EncodeCount.Load()),
		DecodeCount:    b.DecodeCount.Load(),
		DecodeErrors:   b.DecodeErrors.Load(),
		DecodeAvgNanos: avgNanos(b.DecodeTotalNanos.Load(), b.DecodeCount.Load()),
		DetectCount:    b.DetectCount.Load(),
		DetectErrors:   b.DetectErrors.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EncodeCount    int64
	EncodeErrors   int64
	EncodeAvgNanos int64
	DecodeCount    int64
	DecodeErrors   int64
	DecodeAvgNanos int64
	DetectCount    int64
	DetectErrors   int64
}
