package system

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Report is a resource snapshot printed after a command when stats are on
type Report struct {
	Command     string
	Elapsed     time.Duration
	Curves      int
	RSS         uint64
	TotalMemory uint64
	UsedPercent float64
	NumCPU      int
}

// Collect samples process and host resources. Probes that fail leave their
// fields zero; only a failure of every probe is reported.
func Collect(command string, elapsed time.Duration, curves int) (*Report, error) {
	r := &Report{Command: command, Elapsed: elapsed, Curves: curves}
	var failed int

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := p.MemoryInfo(); err == nil {
			r.RSS = info.RSS
		} else {
			failed++
		}
	} else {
		failed++
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		r.TotalMemory = vm.Total
		r.UsedPercent = vm.UsedPercent
	} else {
		failed++
	}

	if n, err := cpu.Counts(true); err == nil {
		r.NumCPU = n
	} else {
		failed++
	}

	if failed == 3 {
		return r, fmt.Errorf("collect stats: no probe succeeded")
	}
	return r, nil
}

// String formats the report as a block
func (r *Report) String() string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Command: %s\n"+
			"Total Time: %.3fs\n"+
			"Curves: %d\n"+
			"RSS: %.1f MiB\n"+
			"Host Memory: %.1f MiB (%.1f%% used)\n"+
			"CPUs: %d\n"+
			"----------------------------\n",
		r.Command, r.Elapsed.Seconds(), r.Curves,
		mib(r.RSS), mib(r.TotalMemory), r.UsedPercent, r.NumCPU,
	)
}

func mib(b uint64) float64 {
	return float64(b) / (1 << 20)
}
