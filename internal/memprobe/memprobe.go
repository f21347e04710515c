// internal/memprobe/memprobe.go

// Package memprobe supplies the distance planner's memory budget. The
// probe is a plain func value so tests and callers can inject fixed
// readings instead of the host's.
package memprobe

import (
	"github.com/shirou/gopsutil/v4/mem"
)

// Func reports available bytes; 0 means no usable signal.
type Func func() uint64

// Available reads the host's available memory. Probe failures return 0
// and the planner falls back to its fixed default width.
func Available() uint64 {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil {
		return 0
	}
	return vm.Available
}

// Budget resolves the planning budget: an explicit --mem-mb override is
// taken as-is, otherwise 80% of the probed available memory is offered,
// leaving headroom for everything that is not the chunk buffers.
func Budget(memMB int, probe Func) uint64 {
	if memMB > 0 {
		return uint64(memMB) << 20
	}
	if probe == nil {
		return 0
	}
	avail := probe()
	return avail / 5 * 4
}
