// core/collapse/collapse.go
package collapse

import (
	"bytes"

	"golang.org/x/crypto/blake2b"

	"polycore-core/genome"
)

// Group is one class of byte-identical rows sharing a ploidy. Members are
// indexes into the collapse input order: 0 is the reference, i >= 1 the
// i-th sample.
type Group struct {
	Rep     *genome.Sample
	Members []int
}

// Size is the number of members in the group.
func (g *Group) Size() int { return len(g.Members) }

// Result is the partition produced by Collapse plus the reverse index.
type Result struct {
	Groups  []Group
	ByInput []int // input index -> group id
}

// SampleGroups returns the groups that vote, i.e. everything but the
// reference's group 0.
func (r *Result) SampleGroups() []Group { return r.Groups[1:] }

// Reps returns one representative sample per group in group order.
func (r *Result) Reps() []*genome.Sample {
	out := make([]*genome.Sample, len(r.Groups))
	for i := range r.Groups {
		out[i] = r.Groups[i].Rep
	}
	return out
}

type bucketKey struct {
	sum    [blake2b.Size256]byte
	ploidy int
}

// Collapse partitions the reference and samples into groups of identical
// rows. Rows are bucketed by BLAKE2b digest plus ploidy and confirmed by
// full comparison, so a digest collision can never merge distinct rows and
// equal rows under different ploidies stay apart (they decode differently).
// The reference owns group 0 and never shares it, which keeps downstream
// voting weights pure sample counts even when a sample matches the
// reference byte for byte. Representatives are first-encountered, making
// group order reproducible for a given input order.
func Collapse(ref *genome.Sample, samples []*genome.Sample) *Result {
	res := &Result{
		Groups:  make([]Group, 1, len(samples)+1),
		ByInput: make([]int, len(samples)+1),
	}
	res.Groups[0] = Group{Rep: ref, Members: []int{0}}

	buckets := make(map[bucketKey][]int, len(samples))
	for i, s := range samples {
		in := i + 1
		key := bucketKey{sum: blake2b.Sum256(s.Row), ploidy: s.Ploidy}
		gid := -1
		for _, cand := range buckets[key] {
			if bytes.Equal(res.Groups[cand].Rep.Row, s.Row) {
				gid = cand
				break
			}
		}
		if gid < 0 {
			gid = len(res.Groups)
			res.Groups = append(res.Groups, Group{Rep: s, Members: []int{in}})
			buckets[key] = append(buckets[key], gid)
		} else {
			res.Groups[gid].Members = append(res.Groups[gid].Members, in)
		}
		res.ByInput[in] = gid
	}
	return res
}
