// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads resolves a --threads request; <= 0 means every CPU.
func EffectiveThreads(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.GOMAXPROCS(0)
}

// DistanceFlagWarnings reports distance flag combinations that parse but
// cannot take effect:
//   - --no-dist makes --chunk-width and --mem-mb dead knobs
//   - an explicit --chunk-width pins the width, so --mem-mb is unused
func DistanceFlagWarnings(noDist bool, chunkWidth, memMB int) []string {
	var warns []string
	if noDist {
		if chunkWidth != 0 {
			warns = append(warns, "warning: --no-dist ignores --chunk-width")
		}
		if memMB != 0 {
			warns = append(warns, "warning: --no-dist ignores --mem-mb")
		}
		return warns
	}
	if chunkWidth > 0 && memMB > 0 {
		warns = append(warns, "warning: --chunk-width set; ignoring --mem-mb for chunk planning")
	}
	return warns
}
