package sampler

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// ErrNoCPUTimes is returned when the OS reports no aggregate CPU line.
var ErrNoCPUTimes = errors.New("no aggregate cpu times reported")

// CPUTimes is a cumulative CPU time reading in seconds.
type CPUTimes struct {
	Idle  float64 // idle + iowait
	Total float64
}

// DiskCounter holds cumulative byte counters for one storage device.
type DiskCounter struct {
	ReadBytes  uint64
	WriteBytes uint64
}

// NetCounter holds cumulative byte counters for one network interface.
type NetCounter struct {
	RxBytes uint64
	TxBytes uint64
}

// Source reads raw OS counters. Disk and network counters are cumulative;
// the sampler turns them into deltas.
type Source interface {
	CPUTimes(ctx context.Context) (CPUTimes, error)
	Memory(ctx context.Context) (used, total uint64, err error)
	DiskCounters(ctx context.Context) (map[string]DiskCounter, error)
	NetCounters(ctx context.Context) (map[string]NetCounter, error)
}

// hostSource reads the local machine through gopsutil.
type hostSource struct{}

// NewHostSource returns a Source backed by the local operating system.
func NewHostSource() Source {
	return hostSource{}
}

func (hostSource) CPUTimes(ctx context.Context) (CPUTimes, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return CPUTimes{}, err
	}
	if len(times) == 0 {
		return CPUTimes{}, ErrNoCPUTimes
	}
	t := times[0]
	idle := t.Idle + t.Iowait
	busy := t.User + t.System + t.Nice + t.Irq + t.Softirq + t.Steal
	return CPUTimes{Idle: idle, Total: idle + busy}, nil
}

func (hostSource) Memory(ctx context.Context) (uint64, uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	return vm.Used, vm.Total, nil
}

func (hostSource) DiskCounters(ctx context.Context) (map[string]DiskCounter, error) {
	stats, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]DiskCounter, len(stats))
	for name, st := range stats {
		out[name] = DiskCounter{ReadBytes: st.ReadBytes, WriteBytes: st.WriteBytes}
	}
	return out, nil
}

func (hostSource) NetCounters(ctx context.Context) (map[string]NetCounter, error) {
	stats, err := psnet.IOCountersWithContext(ctx, true) // per interface
	if err != nil {
		return nil, err
	}
	out := make(map[string]NetCounter, len(stats))
	for _, st := range stats {
		out[st.Name] = NetCounter{RxBytes: st.BytesRecv, TxBytes: st.BytesSent}
	}
	return out, nil
}

// DescribeHost returns "hostname (platform version)" for diagnostics, or
// runtime.GOOS as fallback.
func DescribeHost(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err != nil || info.Platform == "" {
		return runtime.GOOS
	}
	platform := info.Platform
	if info.PlatformVersion != "" {
		platform = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion) // e.g. "ubuntu 24.04"
	}
	if info.Hostname == "" {
		return platform
	}
	return fmt.Sprintf("%s (%s)", info.Hostname, platform)
}
