// core/collapse/collapse_test.go
package collapse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polycore-core/genome"
)

func mustSample(t *testing.T, id, row string, ploidy int) *genome.Sample {
	t.Helper()
	s, err := genome.NewSample(id, []byte(row), ploidy)
	require.NoError(t, err)
	return s
}

func TestCollapseGroupsIdenticalRows(t *testing.T) {
	ref := genome.NewReference("ref", []byte("ACGT"))
	samples := []*genome.Sample{
		mustSample(t, "s1", "ACGT", 1),
		mustSample(t, "s2", "ACGA", 1),
		mustSample(t, "s3", "ACGT", 1),
		mustSample(t, "s4", "ACGA", 1),
		mustSample(t, "s5", "ACGT", 1),
	}
	res := Collapse(ref, samples)

	require.Len(t, res.Groups, 3)
	assert.Equal(t, []int{0}, res.Groups[0].Members, "reference keeps its own group")
	assert.Equal(t, "s1", res.Groups[1].Rep.ID, "first-encountered representative")
	assert.Equal(t, []int{1, 3, 5}, res.Groups[1].Members)
	assert.Equal(t, []int{2, 4}, res.Groups[2].Members)
	assert.Equal(t, []int{0, 1, 2, 1, 2, 1}, res.ByInput)
}

func TestCollapseIsAPartition(t *testing.T) {
	ref := genome.NewReference("ref", []byte("AAAA"))
	samples := []*genome.Sample{
		mustSample(t, "s1", "AAAA", 1),
		mustSample(t, "s2", "AAAT", 1),
		mustSample(t, "s3", "AAAA", 1),
	}
	res := Collapse(ref, samples)

	seen := make(map[int]int)
	for gid := range res.Groups {
		for _, in := range res.Groups[gid].Members {
			seen[in]++
			assert.Equal(t, gid, res.ByInput[in], "reverse index agrees with membership")
		}
	}
	require.Len(t, seen, len(samples)+1, "every input appears")
	for in, n := range seen {
		assert.Equal(t, 1, n, "input %d belongs to exactly one group", in)
	}
}

func TestCollapseKeepsReferenceApart(t *testing.T) {
	ref := genome.NewReference("ref", []byte("ACGT"))
	res := Collapse(ref, []*genome.Sample{mustSample(t, "twin", "ACGT", 1)})
	require.Len(t, res.Groups, 2, "a sample equal to the reference still forms its own group")
	assert.Equal(t, "twin", res.Groups[1].Rep.ID)
}

func TestCollapseSeparatesPloidies(t *testing.T) {
	// Same bytes, different ploidy: W is a diploid het but a tetraploid
	// no-call, so the rows must not share a group.
	ref := genome.NewReference("ref", []byte("AWCT"))
	samples := []*genome.Sample{
		mustSample(t, "di", "AWCT", 2),
		mustSample(t, "tetra", "AWCT", 4),
	}
	res := Collapse(ref, samples)
	require.Len(t, res.Groups, 3)
}

func TestCollapseDistinctAmbiguityStaysDistinct(t *testing.T) {
	ref := genome.NewReference("ref", []byte("AAAA"))
	samples := []*genome.Sample{
		mustSample(t, "s1", "AARA", 2),
		mustSample(t, "s2", "AAWA", 2),
	}
	res := Collapse(ref, samples)
	require.Len(t, res.Groups, 3, "R and W rows are different groups, never normalized")
}
