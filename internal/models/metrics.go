// Package models defines the data carried between the sampler and the formatter.
package models

import "time"

// Metric identifies one group of host counters.
type Metric uint8

const (
	MetricCPU Metric = 1 << iota
	MetricMemory
	MetricDisk
	MetricNetwork
)

// String returns the lower-case metric name used in log fields.
func (m Metric) String() string {
	switch m {
	case MetricCPU:
		return "cpu"
	case MetricMemory:
		return "memory"
	case MetricDisk:
		return "disk"
	case MetricNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Snapshot holds one sampling cycle's data. Disk and network figures are deltas
// over Window, not cumulative counters.
type Snapshot struct {
	// ── Gauges ───────────────────────────────────────────────────────────────
	CPUUsagePercent  float64 // percent 0-100 over the window
	MemoryUsedBytes  uint64  // never above MemoryTotalBytes
	MemoryTotalBytes uint64

	// ── Deltas over Window ──────────────────────────────────────────────────
	DiskReadBytes  uint64
	DiskWriteBytes uint64
	NetRxBytes     uint64
	NetTxBytes     uint64

	Window      time.Duration
	CollectedAt time.Time

	// Unavailable has a bit set for each metric whose counters could not be read.
	Unavailable Metric
}

// Has reports whether m was read successfully.
func (s Snapshot) Has(m Metric) bool {
	return s.Unavailable&m == 0
}
