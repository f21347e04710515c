// core/progressive/progressive.go

// Package progressive produces the soft-core trajectory: how much of the
// classifiable alignment survives as voters are admitted one by one.
package progressive

import (
	"sort"

	"polycore-core/classify"
)

// Point is one trajectory step: the core share after admission k.
type Point struct {
	K            int
	SampleID     string
	CoreFraction float64
}

// Tracker admits voters in a fixed order and reclassifies only the columns
// still alive. Exclusion is sticky: a column that falls below MinCF is
// dropped from every later prefix, which makes the trajectory monotone
// non-increasing by construction and shrinks the per-admission workload as
// the core shrinks.
type Tracker struct {
	voters       []classify.Voter
	th           classify.Thresholds
	classifiable []bool

	total    int // classifiable column count, the fixed denominator
	cols     []int
	tallies  []classify.Tally
	k        int
	voting   int
	expected int
}

// New builds a tracker over voters in admission order. classifiable marks
// the columns eligible for tracking (reference carries a concrete base).
func New(voters []classify.Voter, classifiable []bool, th classify.Thresholds) *Tracker {
	t := &Tracker{voters: voters, th: th, classifiable: classifiable}
	t.Reset()
	return t
}

// Reset rewinds to before the first admission; already-emitted points stay
// valid, the tracker just starts the sequence over.
func (t *Tracker) Reset() {
	t.cols = t.cols[:0]
	for c, ok := range t.classifiable {
		if ok {
			t.cols = append(t.cols, c)
		}
	}
	t.total = len(t.cols)
	t.tallies = make([]classify.Tally, len(t.cols))
	t.k, t.voting, t.expected = 0, 0, 0
}

// Remaining is the number of admissions left.
func (t *Tracker) Remaining() int { return len(t.voters) - t.k }

// Next admits one voter and reports the trajectory point, or ok=false when
// every voter has been admitted. Consumers may stop at any prefix.
func (t *Tracker) Next() (Point, bool) {
	if t.k >= len(t.voters) {
		return Point{}, false
	}
	v := t.voters[t.k]
	t.k++
	t.voting += v.Weight
	t.expected += v.Weight * v.Sample.Ploidy

	keep := 0
	for i, c := range t.cols {
		counts, known := v.Sample.CountsAt(c)
		tl := t.tallies[i].Add(counts, known, v.Sample.Ploidy, v.Weight, t.th.MinGF)
		if tl.LabelOf(t.voting, t.th) == classify.Excluded {
			continue
		}
		t.cols[keep] = c
		t.tallies[keep] = tl
		keep++
	}
	t.cols = t.cols[:keep]
	t.tallies = t.tallies[:keep]

	frac := 0.0
	if t.total > 0 {
		frac = float64(keep) / float64(t.total)
	}
	return Point{K: t.k, SampleID: v.Sample.ID, CoreFraction: frac}, true
}

// All drains the tracker from its current position.
func (t *Tracker) All() []Point {
	var out []Point
	for {
		p, ok := t.Next()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}

// OrderByGF returns the voters reordered by descending genome fraction
// (ascending missingness); ties keep input order. gf parallels voters.
// Admitting complete genomes first means early prefixes show the widest
// core and each admission can only carve it down.
func OrderByGF(voters []classify.Voter, gf []float64) []classify.Voter {
	idx := make([]int, len(voters))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return gf[idx[a]] > gf[idx[b]] })
	out := make([]classify.Voter, len(voters))
	for i, j := range idx {
		out[i] = voters[j]
	}
	return out
}
