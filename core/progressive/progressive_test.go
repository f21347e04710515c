// core/progressive/progressive_test.go
package progressive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polycore-core/classify"
	"polycore-core/genome"
)

func voter(t *testing.T, id, row string, weight int) classify.Voter {
	t.Helper()
	s, err := genome.NewSample(id, []byte(row), 1)
	require.NoError(t, err)
	return classify.Voter{Sample: s, Weight: weight}
}

func classifiable(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

func TestTrajectoryShrinksWithMissingness(t *testing.T) {
	th := classify.Thresholds{MinGF: 1, MinCF: 1, MinPN: 1}
	voters := []classify.Voter{
		voter(t, "full", "ACGTACGT", 1),
		voter(t, "half", "ACGTNNNN", 1),
		voter(t, "one-gap", "ACGTACG-", 1),
	}
	tr := New(voters, classifiable(8), th)

	p1, ok := tr.Next()
	require.True(t, ok)
	assert.Equal(t, Point{K: 1, SampleID: "full", CoreFraction: 1.0}, p1)

	p2, ok := tr.Next()
	require.True(t, ok)
	assert.InDelta(t, 0.5, p2.CoreFraction, 1e-12)

	p3, ok := tr.Next()
	require.True(t, ok)
	assert.InDelta(t, 0.5, p3.CoreFraction, 1e-12, "the gap column was already gone")

	_, ok = tr.Next()
	assert.False(t, ok)
}

func TestTrajectoryIsMonotone(t *testing.T) {
	th := classify.Thresholds{MinGF: 0, MinCF: 0.6, MinPN: 1}
	voters := []classify.Voter{
		voter(t, "a", "NCGTACGT", 1),
		voter(t, "b", "ACNTACGT", 2),
		voter(t, "c", "ACGTNNGT", 1),
		voter(t, "d", "ACGTACGT", 3),
	}
	tr := New(voters, classifiable(8), th)
	prev := 1.0
	for {
		p, ok := tr.Next()
		if !ok {
			break
		}
		assert.LessOrEqual(t, p.CoreFraction, prev, "k=%d", p.K)
		prev = p.CoreFraction
	}
}

func TestExclusionIsSticky(t *testing.T) {
	// Column 0: missing in the first voter, present in the next two. A
	// fresh pass over all three would keep it (2/3 >= 0.6); the tracker
	// excludes it at k=1 and never lets it back.
	th := classify.Thresholds{MinGF: 1, MinCF: 0.6, MinPN: 1}
	voters := []classify.Voter{
		voter(t, "a", "NA", 1),
		voter(t, "b", "AA", 1),
		voter(t, "c", "AA", 1),
	}
	tr := New(voters, classifiable(2), th)
	pts := tr.All()
	require.Len(t, pts, 3)
	assert.InDelta(t, 0.5, pts[2].CoreFraction, 1e-12)

	ref := genome.NewReference("ref", []byte("AA"))
	tb, err := classify.Classify(ref, voters, th)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, tb.CoreFraction(), 1e-12,
		"full-set pass keeps the column; the trajectory is the stricter running intersection")
}

func TestResetReplaysIdentically(t *testing.T) {
	th := classify.Thresholds{MinGF: 1, MinCF: 1, MinPN: 1}
	voters := []classify.Voter{
		voter(t, "a", "ACGT", 1),
		voter(t, "b", "ACNT", 1),
	}
	tr := New(voters, classifiable(4), th)
	first := tr.All()
	tr.Reset()
	assert.Equal(t, first, tr.All())
}

func TestOrderByGF(t *testing.T) {
	voters := []classify.Voter{
		voter(t, "low", "x", 1),
		voter(t, "high", "x", 1),
		voter(t, "mid-a", "x", 1),
		voter(t, "mid-b", "x", 1),
	}
	got := OrderByGF(voters, []float64{0.2, 1.0, 0.5, 0.5})
	ids := make([]string, len(got))
	for i, v := range got {
		ids[i] = v.Sample.ID
	}
	assert.Equal(t, []string{"high", "mid-a", "mid-b", "low"}, ids, "descending, ties keep input order")
}

func TestWeightedAdmission(t *testing.T) {
	// Column 1 is missing in the first voter and excluded at k=1. The
	// weight-2 group would lift it to 2/3 called in a fresh pass, but an
	// excluded column never returns.
	th := classify.Thresholds{MinGF: 1, MinCF: 0.6, MinPN: 1}
	voters := []classify.Voter{
		voter(t, "solo", "AN", 1),
		voter(t, "pair", "AA", 2),
	}
	tr := New(voters, classifiable(2), th)

	p1, _ := tr.Next()
	assert.InDelta(t, 0.5, p1.CoreFraction, 1e-12)
	p2, _ := tr.Next()
	assert.InDelta(t, 0.5, p2.CoreFraction, 1e-12, "sticky: the column cannot return")
}
