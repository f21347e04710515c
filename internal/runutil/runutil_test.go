// internal/runutil/runutil_test.go
package runutil

import (
	"runtime"
	"testing"
)

func TestEffectiveThreads(t *testing.T) {
	if got := EffectiveThreads(4); got != 4 {
		t.Errorf("explicit threads: got %d", got)
	}
	if got := EffectiveThreads(0); got != runtime.GOMAXPROCS(0) {
		t.Errorf("auto threads: got %d", got)
	}
	if got := EffectiveThreads(-2); got < 1 {
		t.Errorf("negative request must still yield a worker, got %d", got)
	}
}

func TestDistanceFlagWarnings(t *testing.T) {
	if w := DistanceFlagWarnings(false, 0, 0); len(w) != 0 {
		t.Errorf("defaults should not warn: %v", w)
	}
	if w := DistanceFlagWarnings(true, 512, 100); len(w) != 2 {
		t.Errorf("--no-dist with tuning flags: want 2 warnings, got %v", w)
	}
	if w := DistanceFlagWarnings(false, 512, 100); len(w) != 1 {
		t.Errorf("width+budget: want 1 warning, got %v", w)
	}
	if w := DistanceFlagWarnings(false, 512, 0); len(w) != 0 {
		t.Errorf("width alone should not warn: %v", w)
	}
}
