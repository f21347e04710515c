// core/expand/expand_test.go
package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polycore-core/collapse"
	"polycore-core/genome"
)

func fixture(t *testing.T) ([]*genome.Sample, *Expander) {
	t.Helper()
	ref := genome.NewReference("ref", []byte("ACGTAC"))
	rows := []struct {
		id  string
		row string
	}{
		{"s1", "ACGTAC"},
		{"s2", "ACGTAT"},
		{"s3", "ACGTAC"},
	}
	samples := make([]*genome.Sample, len(rows))
	for i, r := range rows {
		s, err := genome.NewSample(r.id, []byte(r.row), 1)
		require.NoError(t, err)
		samples[i] = s
	}
	inputs := append([]*genome.Sample{ref}, samples...)
	e, err := New(inputs, collapse.Collapse(ref, samples))
	require.NoError(t, err)
	return inputs, e
}

func TestRoundTripIdentity(t *testing.T) {
	inputs, e := fixture(t)
	all := []int{0, 1, 2, 3, 4, 5}
	rows := e.RowsAt(all)
	require.Len(t, rows, len(inputs))
	for i, in := range inputs {
		assert.Equal(t, string(in.Row), string(rows[i]),
			"expansion reproduces %s byte for byte", in.ID)
	}
}

func TestRowAtSubset(t *testing.T) {
	_, e := fixture(t)
	assert.Equal(t, "AT", string(e.RowAt(2, []int{4, 5})), "s2 at the last two columns")
	assert.Equal(t, "AC", string(e.RowAt(3, []int{4, 5})), "s3 reads through the s1 representative")
}

func TestGroupProjection(t *testing.T) {
	_, e := fixture(t)
	// Groups: 0=ref, 1={s1,s3}, 2={s2}.
	assert.Equal(t, 1, e.GroupOf(1))
	assert.Equal(t, 1, e.GroupOf(3))
	assert.Equal(t, "s1", e.SampleOf(3).ID)

	gf := e.FloatsFromGroups([]float64{1.0, 0.9, 0.8})
	assert.Equal(t, []float64{1.0, 0.9, 0.8, 0.9}, gf)

	kept := e.BoolsFromGroups([]bool{true, true, false})
	assert.Equal(t, []bool{true, true, false, true}, kept)

	n := e.IntsFromGroups([]int{0, 5, 7})
	assert.Equal(t, []int{0, 5, 7, 5}, n)
}

func TestCopiesAt(t *testing.T) {
	ref := genome.NewReference("ref", []byte("AA"))
	het, err := genome.NewSample("het", []byte("AR"), 2)
	require.NoError(t, err)
	e, err := New([]*genome.Sample{ref, het}, collapse.Collapse(ref, []*genome.Sample{het}))
	require.NoError(t, err)

	copies, ok := e.CopiesAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, "AG", string(copies))

	copies, ok = e.CopiesAt(1, 0)
	require.True(t, ok)
	assert.Equal(t, "AA", string(copies))
}

func TestNewRejectsMismatch(t *testing.T) {
	ref := genome.NewReference("ref", []byte("AA"))
	res := collapse.Collapse(ref, nil)
	_, err := New([]*genome.Sample{ref, ref}, res)
	require.Error(t, err)
}
