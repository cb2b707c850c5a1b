package ecfrag

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAlloc is called after each fragment buffer allocation.
	// totalSize includes the header; err is nil if successful.
	RecordAlloc(totalSize int, err error)

	// RecordFree is called after each fragment buffer release attempt.
	RecordFree(err error)

	// RecordHeaderViolation is called whenever a magic check fails,
	// with the name of the detecting operation.
	RecordHeaderViolation(op string)

	// RecordVerifyStripe is called after each stripe verification.
	// checked is the number of fragments examined, damaged the number
	// that failed either the header or the checksum check.
	RecordVerifyStripe(checked, damaged int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAlloc(int, error)                     {}
func (NoopMetricsCollector) RecordFree(error)                           {}
func (NoopMetricsCollector) RecordHeaderViolation(string)               {}
func (NoopMetricsCollector) RecordVerifyStripe(int, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocCount       atomic.Int64
	AllocErrors      atomic.Int64
	AllocBytes       atomic.Int64
	FreeCount        atomic.Int64
	FreeErrors       atomic.Int64
	HeaderViolations atomic.Int64
	VerifyCount      atomic.Int64
	VerifyDamaged    atomic.Int64
	VerifyTotalNanos atomic.Int64
}

func (m *BasicMetricsCollector) RecordAlloc(totalSize int, err error) {
	m.AllocCount.Add(1)
	if err != nil {
		m.AllocErrors.Add(1)
		return
	}
	m.AllocBytes.Add(int64(totalSize))
}

func (m *BasicMetricsCollector) RecordFree(err error) {
	m.FreeCount.Add(1)
	if err != nil {
		m.FreeErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordHeaderViolation(string) {
	m.HeaderViolations.Add(1)
}

func (m *BasicMetricsCollector) RecordVerifyStripe(checked, damaged int, duration time.Duration) {
	m.VerifyCount.Add(1)
	m.VerifyDamaged.Add(int64(damaged))
	m.VerifyTotalNanos.Add(duration.Nanoseconds())
}
