// core/expand/expand.go

// Package expand projects collapsed, group-level results back onto the
// original per-sample identity.
package expand

import (
	"fmt"

	"polycore-core/collapse"
	"polycore-core/genome"
)

// Expander rebuilds per-sample views from a collapse partition. All row
// reads go through the group representative, so round-trip identity is a
// property of the partition itself rather than of retained input copies.
type Expander struct {
	res    *collapse.Result
	inputs []*genome.Sample
}

// New wires a partition to the inputs it was built from (index 0 the
// reference, then samples in input order).
func New(inputs []*genome.Sample, res *collapse.Result) (*Expander, error) {
	if len(inputs) != len(res.ByInput) {
		return nil, fmt.Errorf("expand: %d inputs but partition covers %d", len(inputs), len(res.ByInput))
	}
	return &Expander{res: res, inputs: inputs}, nil
}

// Len is the number of inputs, reference included.
func (e *Expander) Len() int { return len(e.inputs) }

// ID returns input i's identifier.
func (e *Expander) ID(i int) string { return e.inputs[i].ID }

// GroupOf returns the group id owning input i.
func (e *Expander) GroupOf(i int) int { return e.res.ByInput[i] }

// SampleOf returns the representative carrying input i's bytes and ploidy.
func (e *Expander) SampleOf(i int) *genome.Sample {
	return e.res.Groups[e.res.ByInput[i]].Rep
}

// RowAt materializes input i's symbols at the given columns, byte-identical
// to the original row at those positions.
func (e *Expander) RowAt(i int, cols []int) []byte {
	src := e.SampleOf(i).Row
	out := make([]byte, len(cols))
	for j, c := range cols {
		out[j] = src[c]
	}
	return out
}

// RowsAt materializes every input at the given columns.
func (e *Expander) RowsAt(cols []int) [][]byte {
	out := make([][]byte, e.Len())
	for i := range out {
		out[i] = e.RowAt(i, cols)
	}
	return out
}

// CopiesAt decodes input i's per-copy alleles at column c; ok=false means
// no call there.
func (e *Expander) CopiesAt(i, c int) ([]byte, bool) {
	s := e.SampleOf(i)
	return genome.CopySymbols(s.Row[c], s.Ploidy)
}

// FloatsFromGroups spreads one value per group onto every member input.
func (e *Expander) FloatsFromGroups(v []float64) []float64 {
	out := make([]float64, e.Len())
	for i, gid := range e.res.ByInput {
		out[i] = v[gid]
	}
	return out
}

// IntsFromGroups spreads one value per group onto every member input.
func (e *Expander) IntsFromGroups(v []int) []int {
	out := make([]int, e.Len())
	for i, gid := range e.res.ByInput {
		out[i] = v[gid]
	}
	return out
}

// BoolsFromGroups spreads one flag per group onto every member input.
func (e *Expander) BoolsFromGroups(v []bool) []bool {
	out := make([]bool, e.Len())
	for i, gid := range e.res.ByInput {
		out[i] = v[gid]
	}
	return out
}
