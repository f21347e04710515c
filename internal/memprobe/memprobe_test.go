// internal/memprobe/memprobe_test.go
package memprobe

import "testing"

func TestBudgetOverrideWins(t *testing.T) {
	probe := func() uint64 { t.Fatal("probe must not run under --mem-mb"); return 0 }
	if got := Budget(512, probe); got != 512<<20 {
		t.Fatalf("Budget = %d, want %d", got, uint64(512)<<20)
	}
}

func TestBudgetAppliesHeadroom(t *testing.T) {
	probe := func() uint64 { return 1000 }
	if got := Budget(0, probe); got != 800 {
		t.Fatalf("Budget = %d, want 800", got)
	}
}

func TestBudgetNoSignal(t *testing.T) {
	if got := Budget(0, func() uint64 { return 0 }); got != 0 {
		t.Fatalf("Budget = %d, want 0", got)
	}
	if got := Budget(0, nil); got != 0 {
		t.Fatalf("Budget(nil probe) = %d, want 0", got)
	}
}
