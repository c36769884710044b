package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vesaa/sysmon/internal/models"
)

// labelWidth is the fixed width of the label column in the report block.
const labelWidth = 17

// ReportLines is the number of lines Render writes, header included.
const ReportLines = 7

// Metrics holds display strings derived from one Snapshot.
type Metrics struct {
	CPUUsage           string
	MemoryUsed         string
	MemoryTotal        string
	MemoryUsagePercent string
	DiskRead           string
	DiskWrite          string
	NetRX              string
	NetTX              string

	// Per-second rates; empty when the snapshot has no window or the metric
	// is unavailable.
	DiskReadRate  string
	DiskWriteRate string
	NetRXRate     string
	NetTXRate     string
}

// Format converts a snapshot into display strings. Unavailable metrics
// render as N/A.
func Format(s models.Snapshot) Metrics {
	m := Metrics{
		CPUUsage:           NotAvailable,
		MemoryUsed:         NotAvailable,
		MemoryTotal:        NotAvailable,
		MemoryUsagePercent: NotAvailable,
		DiskRead:           NotAvailable,
		DiskWrite:          NotAvailable,
		NetRX:              NotAvailable,
		NetTX:              NotAvailable,
	}

	if s.Has(models.MetricCPU) {
		m.CPUUsage = FormatPercent(s.CPUUsagePercent)
	}
	if s.Has(models.MetricMemory) {
		m.MemoryUsed = FormatBytes(s.MemoryUsedBytes)
		m.MemoryTotal = FormatBytes(s.MemoryTotalBytes)
		m.MemoryUsagePercent = MemoryPercent(s.MemoryUsedBytes, s.MemoryTotalBytes)
	}
	if s.Has(models.MetricDisk) {
		m.DiskRead = FormatBytes(s.DiskReadBytes)
		m.DiskWrite = FormatBytes(s.DiskWriteBytes)
		m.DiskReadRate = rate(s.DiskReadBytes, s.Window)
		m.DiskWriteRate = rate(s.DiskWriteBytes, s.Window)
	}
	if s.Has(models.MetricNetwork) {
		m.NetRX = FormatBytes(s.NetRxBytes)
		m.NetTX = FormatBytes(s.NetTxBytes)
		m.NetRXRate = rate(s.NetRxBytes, s.Window)
		m.NetTXRate = rate(s.NetTxBytes, s.Window)
	}
	return m
}

func rate(bytes uint64, window time.Duration) string {
	if window <= 0 {
		return ""
	}
	return FormatSpeed(uint64(float64(bytes) / window.Seconds()))
}

// Render writes the report block:
//
//	System Metrics:
//	  CPU Usage:       12.5%
//	  Memory:          3.20 GB / 16.0 GB (20.0%)
//	  Disk Read:       1.50 MB (1.50 MB/s)
//	  ...
func (m Metrics) Render(w io.Writer) error {
	var b strings.Builder
	b.WriteString("System Metrics:\n")
	row(&b, "CPU Usage:", m.CPUUsage, "")
	row(&b, "Memory:", fmt.Sprintf("%s / %s (%s)", m.MemoryUsed, m.MemoryTotal, m.MemoryUsagePercent), "")
	row(&b, "Disk Read:", m.DiskRead, m.DiskReadRate)
	row(&b, "Disk Write:", m.DiskWrite, m.DiskWriteRate)
	row(&b, "Network RX:", m.NetRX, m.NetRXRate)
	row(&b, "Network TX:", m.NetTX, m.NetTXRate)

	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the rendered report block.
func (m Metrics) String() string {
	var b strings.Builder
	_ = m.Render(&b)
	return b.String()
}

func row(b *strings.Builder, label, value, rate string) {
	fmt.Fprintf(b, "  %-*s%s", labelWidth, label, value)
	if rate != "" {
		fmt.Fprintf(b, " (%s)", rate)
	}
	b.WriteByte('\n')
}

// Line renders the metrics as one log line stamped with t.
func (m Metrics) Line(t time.Time) string {
	return fmt.Sprintf("%s CPU %s | MEM %s / %s (%s) | DISK R %s W %s | NET RX %s TX %s",
		t.Format("15:04:05"),
		m.CPUUsage,
		m.MemoryUsed, m.MemoryTotal, m.MemoryUsagePercent,
		orValue(m.DiskReadRate, m.DiskRead), orValue(m.DiskWriteRate, m.DiskWrite),
		orValue(m.NetRXRate, m.NetRX), orValue(m.NetTXRate, m.NetTX),
	)
}

// orValue prefers the per-second rate when one was computed.
func orValue(rate, value string) string {
	if rate != "" {
		return rate
	}
	return value
}
