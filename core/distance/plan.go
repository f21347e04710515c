// core/distance/plan.go
package distance

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientMemory means even the minimum viable chunk width does
	// not fit the given budget.
	ErrInsufficientMemory = errors.New("distance: memory budget too small for minimum chunk width")
)

const (
	// DefaultChunkWidth is used when no memory signal is available.
	DefaultChunkWidth = 4096
	// MinChunkWidth is the smallest width worth dispatching.
	MinChunkWidth = 64
	// bytesPerCell is one decoded genotype (4 allele counts) plus an equal
	// scratch share for the known flags and accumulator slack.
	bytesPerCell = 8
)

// Plan is the chunking decision for one run.
type Plan struct {
	Width  int
	Chunks int
	Auto   bool // width derived from the budget rather than requested
}

// PlanChunks sizes whole-column chunks for cols columns over n samples and
// the given worker count. explicit > 0 pins the width; otherwise the width
// is budget/(cells per column across workers), clamped to cols and required
// to reach MinChunkWidth unless the whole alignment already fits, falling
// back to DefaultChunkWidth when budget is 0 (no signal).
func PlanChunks(cols, n, workers, explicit int, budget uint64) (Plan, error) {
	if workers < 1 {
		workers = 1
	}
	p := Plan{}
	switch {
	case cols == 0:
		return p, nil
	case explicit > 0:
		p.Width = explicit
	case budget == 0:
		p.Width = DefaultChunkWidth
		p.Auto = true
	default:
		perColumn := uint64(n) * bytesPerCell * uint64(workers)
		if perColumn == 0 {
			perColumn = 1
		}
		w := budget / perColumn
		if w > uint64(cols) {
			w = uint64(cols) // the whole alignment fits; width need not reach the floor
		}
		if w < MinChunkWidth && w < uint64(cols) {
			return p, fmt.Errorf(
				"%w: %d samples need %d B per column, budget %d B allows width %d (< %d); raise --mem-mb, lower --threads, or reduce the sample set",
				ErrInsufficientMemory, n, perColumn, budget, w, MinChunkWidth)
		}
		p.Width = int(w)
		p.Auto = true
	}
	if p.Width > cols {
		p.Width = cols
	}
	p.Chunks = (cols + p.Width - 1) / p.Width
	return p, nil
}
