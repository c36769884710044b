// Package sampler collects host resource figures over a sampling window.
// Counters come from a Source (gopsutil on a real host); the sampler turns two
// timestamped readings into a models.Snapshot.
package sampler

import (
	"context"
	"strings"
	"time"

	"github.com/vesaa/sysmon/internal/logging"
	"github.com/vesaa/sysmon/internal/models"
)

// Sampler gathers snapshots from a Source. It keeps no state between calls,
// so one Sampler can serve concurrent Collect calls.
type Sampler struct {
	source Source
	now    func() time.Time
}

// New creates a Sampler reading from source.
func New(source Source) *Sampler {
	return &Sampler{source: source, now: time.Now}
}

// reading is one set of cumulative counters taken at a point in time.
type reading struct {
	at      time.Time
	cpu     CPUTimes
	disks   map[string]DiskCounter
	nics    map[string]NetCounter
	missing models.Metric
}

// Collect takes a baseline reading, waits for window, takes a second reading
// and returns the deltas between them. The only error is ctx being done
// before the window elapses; unreadable counters are reported through
// Snapshot.Unavailable instead.
func (s *Sampler) Collect(ctx context.Context, window time.Duration) (models.Snapshot, error) {
	first := s.read(ctx)

	if err := wait(ctx, window); err != nil {
		return models.Snapshot{}, err
	}

	second := s.read(ctx)
	return s.snapshot(ctx, first, second), nil
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// read takes one reading of the cumulative counters.
func (s *Sampler) read(ctx context.Context) reading {
	r := reading{at: s.now()}

	// CPU
	if t, err := s.source.CPUTimes(ctx); err == nil {
		r.cpu = t
	} else {
		r.missing |= models.MetricCPU
		warn(models.MetricCPU, err)
	}

	// Disk
	if disks, err := s.source.DiskCounters(ctx); err == nil {
		r.disks = wholeDevices(disks)
	} else {
		r.missing |= models.MetricDisk
		warn(models.MetricDisk, err)
	}

	// Network
	if nics, err := s.source.NetCounters(ctx); err == nil {
		r.nics = nics
	} else {
		r.missing |= models.MetricNetwork
		warn(models.MetricNetwork, err)
	}

	return r
}

// snapshot combines two readings with a fresh memory gauge.
func (s *Sampler) snapshot(ctx context.Context, prev, cur reading) models.Snapshot {
	snap := models.Snapshot{
		Window:      cur.at.Sub(prev.at),
		CollectedAt: cur.at,
		Unavailable: prev.missing | cur.missing,
	}

	if snap.Has(models.MetricCPU) {
		snap.CPUUsagePercent = cpuPercent(prev.cpu, cur.cpu)
	}

	// Memory
	if used, total, err := s.source.Memory(ctx); err == nil {
		if used > total {
			used = total
		}
		snap.MemoryUsedBytes = used
		snap.MemoryTotalBytes = total
	} else {
		snap.Unavailable |= models.MetricMemory
		warn(models.MetricMemory, err)
	}

	if snap.Has(models.MetricDisk) {
		for name, c := range cur.disks {
			p, ok := prev.disks[name]
			if !ok {
				continue // device appeared mid-window; no baseline
			}
			snap.DiskReadBytes += delta(p.ReadBytes, c.ReadBytes)
			snap.DiskWriteBytes += delta(p.WriteBytes, c.WriteBytes)
		}
	}

	if snap.Has(models.MetricNetwork) {
		for name, c := range cur.nics {
			p, ok := prev.nics[name]
			if !ok {
				continue
			}
			snap.NetRxBytes += delta(p.RxBytes, c.RxBytes)
			snap.NetTxBytes += delta(p.TxBytes, c.TxBytes)
		}
	}

	return snap
}

// ─── helpers ──────────────────────────────────────────────────────────────────

// delta returns cur-prev, or 0 when the counter went backwards (wrap or reset).
func delta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}

// cpuPercent returns busy time as a share of elapsed CPU time, clamped to 0-100.
func cpuPercent(prev, cur CPUTimes) float64 {
	total := cur.Total - prev.Total
	if total <= 0 {
		return 0
	}
	idle := cur.Idle - prev.Idle
	pct := (1 - idle/total) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// wholeDevices drops partitions whose parent device is also listed (sda1
// under sda, nvme0n1p2 under nvme0n1) and stacked virtual devices, so the
// same I/O is not counted twice.
func wholeDevices(disks map[string]DiskCounter) map[string]DiskCounter {
	out := make(map[string]DiskCounter, len(disks))
	for name, c := range disks {
		if isStacked(name) || hasParent(name, disks) {
			continue
		}
		out[name] = c
	}
	return out
}

// isStacked reports device-mapper (LVM, LUKS), md RAID and zram devices.
// Their I/O is either repeated on the backing disks or never reaches one.
func isStacked(name string) bool {
	switch {
	case strings.HasPrefix(name, "dm-"):
		return true
	case strings.HasPrefix(name, "md"):
		return isDigits(name[2:])
	case strings.HasPrefix(name, "zram"):
		return true
	}
	return false
}

func hasParent(name string, disks map[string]DiskCounter) bool {
	for parent := range disks {
		if isPartitionOf(name, parent) {
			return true
		}
	}
	return false
}

// isPartitionOf reports whether name is a partition of parent. A parent whose
// name ends in a digit (nvme0n1, mmcblk0) uses a "p<N>" suffix; otherwise the
// suffix is just digits (sda1).
func isPartitionOf(name, parent string) bool {
	if name == parent || !strings.HasPrefix(name, parent) {
		return false
	}
	suffix := name[len(parent):]
	if endsWithDigit(parent) {
		if !strings.HasPrefix(suffix, "p") {
			return false
		}
		suffix = suffix[1:]
	}
	return isDigits(suffix)
}

func endsWithDigit(s string) bool {
	return s != "" && s[len(s)-1] >= '0' && s[len(s)-1] <= '9'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func warn(m models.Metric, err error) {
	logging.Warn().Err(err).Stringer("metric", m).Msg("counter read failed; metric unavailable")
}
