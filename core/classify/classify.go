// core/classify/classify.go
package classify

import (
	"errors"
	"fmt"

	"polycore-core/genome"
)

var (
	// ErrEmptyAlignment flags a zero-length alignment or one with no
	// classifiable column.
	ErrEmptyAlignment = errors.New("classify: empty alignment")
	// ErrThresholdRange flags a threshold outside its legal range.
	ErrThresholdRange = errors.New("classify: threshold out of range")
)

// Thresholds are the classification knobs. Fractions live in [0,1];
// MinPN counts samples.
type Thresholds struct {
	MinGF float64 // genome fraction floor: global sample filter and per-site call gate
	MinCF float64 // called-sample fraction a column needs to stay core
	MinPF float64 // alternate-allele copy fraction for a variant call
	MinPN int     // alternate-allele sample count for a variant call
}

// DefaultThresholds mirrors the tool defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{MinGF: 0.9, MinCF: 0.95, MinPF: 0, MinPN: 0}
}

// Validate rejects out-of-range thresholds.
func (th Thresholds) Validate() error {
	check := func(name string, v float64) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s=%g not in [0,1]", ErrThresholdRange, name, v)
		}
		return nil
	}
	if err := check("min-gf", th.MinGF); err != nil {
		return err
	}
	if err := check("min-cf", th.MinCF); err != nil {
		return err
	}
	if err := check("min-pf", th.MinPF); err != nil {
		return err
	}
	if th.MinPN < 0 {
		return fmt.Errorf("%w: min-pn=%d negative", ErrThresholdRange, th.MinPN)
	}
	return nil
}

// Label is the classification of one alignment column.
type Label uint8

const (
	Excluded  Label = iota // not part of the core
	Invariant              // core, no alternate allele passes the filters
	Variant                // core with a qualifying alternate allele
)

func (l Label) String() string {
	switch l {
	case Invariant:
		return "core-invariant"
	case Variant:
		return "core-variant"
	default:
		return "excluded"
	}
}

// Voter is one collapsed group as the classifier sees it: a representative
// row voting with the weight of its members.
type Voter struct {
	Sample *genome.Sample
	Weight int
}

/* ----------------------------- tally engine ----------------------------- */

// Tally accumulates one column's calls. The zero value is ready to use and
// Add is pure, so incremental consumers can snapshot and replay tallies.
type Tally struct {
	Called  int    // called samples (weighted)
	Covered int    // non-missing copies (weighted)
	Copies  [4]int // called copies per allele, Alphabet rank order
	Samples [4]int // called samples carrying the allele (weighted)
}

// Add admits one voter's genotype at the column. A voter is called when its
// per-site coverage meets MinGF; coverage is all-or-nothing under fixed
// composition, so minGF == 0 is the only setting that calls uncovered
// voters.
func (t Tally) Add(counts genome.Counts, known bool, ploidy, weight int, minGF float64) Tally {
	if known {
		t.Covered += ploidy * weight
	} else if minGF > 0 {
		return t
	}
	t.Called += weight
	for a := 0; a < 4; a++ {
		if counts[a] > 0 {
			t.Copies[a] += int(counts[a]) * weight
			t.Samples[a] += weight
		}
	}
	return t
}

// majorityAlt picks the majority allele and the primary alternate, both
// breaking count ties toward the lower Alphabet rank. Returns rank indexes,
// -1 when absent.
func (t *Tally) majorityAlt() (maj, alt int) {
	maj, alt = -1, -1
	for a := 0; a < 4; a++ {
		if t.Copies[a] == 0 {
			continue
		}
		if maj < 0 || t.Copies[a] > t.Copies[maj] {
			maj = a
		}
	}
	for a := 0; a < 4; a++ {
		if a == maj || t.Copies[a] == 0 {
			continue
		}
		if alt < 0 || t.Copies[a] > t.Copies[alt] {
			alt = a
		}
	}
	return maj, alt
}

// LabelOf applies the classification rule to a tally given how many samples
// were eligible to vote. This is the single rule shared by Classify and the
// progressive tracker.
func (t Tally) LabelOf(voting int, th Thresholds) Label {
	if voting == 0 {
		if th.MinCF > 0 {
			return Excluded
		}
		return Invariant
	}
	if float64(t.Called)/float64(voting) < th.MinCF {
		return Excluded
	}
	_, alt := t.majorityAlt()
	if alt < 0 {
		return Invariant
	}
	called := t.Copies[0] + t.Copies[1] + t.Copies[2] + t.Copies[3]
	if float64(t.Copies[alt])/float64(called) >= th.MinPF && t.Samples[alt] >= th.MinPN {
		return Variant
	}
	return Invariant
}

// SiteStat is the per-column result. Immutable once computed.
type SiteStat struct {
	Label          Label
	GenomeFraction float64 // covered copies / expected copies
	CoreFraction   float64 // called samples / voting samples
	Majority       byte    // majority allele symbol, 'N' when no copies called
	Alts           []byte  // non-majority symbols, primary first then rank order
	AltFraction    float64 // primary-alternate copies / called copies
	AltSamples     int     // samples carrying the primary alternate
}

// Finalize derives the column stats from a tally. expected is the copy
// total over voting samples (weights times ploidy).
func (t Tally) Finalize(voting, expected int, th Thresholds) SiteStat {
	st := SiteStat{Label: t.LabelOf(voting, th), Majority: 'N'}
	if expected > 0 {
		st.GenomeFraction = float64(t.Covered) / float64(expected)
	}
	if voting > 0 {
		st.CoreFraction = float64(t.Called) / float64(voting)
	}
	maj, alt := t.majorityAlt()
	if maj < 0 {
		return st
	}
	st.Majority = genome.Alphabet[maj]
	if alt < 0 {
		return st
	}
	called := t.Copies[0] + t.Copies[1] + t.Copies[2] + t.Copies[3]
	st.AltFraction = float64(t.Copies[alt]) / float64(called)
	st.AltSamples = t.Samples[alt]
	st.Alts = append(st.Alts, genome.Alphabet[alt])
	for a := 0; a < 4; a++ {
		if a != maj && a != alt && t.Copies[a] > 0 {
			st.Alts = append(st.Alts, genome.Alphabet[a])
		}
	}
	return st
}

/* ----------------------------- full-set pass ---------------------------- */

// Table is the one-shot classification of an alignment.
type Table struct {
	Ref          *genome.Sample
	Voters       []Voter
	Stats        []SiteStat // one per column; unclassifiable columns are Excluded zero stats
	Classifiable []bool     // reference carries a concrete base
	Kept         []bool     // voter passed the global MinGF filter
	Known        []int      // classifiable columns with a call, per voter
	classifiable int
	thresholds   Thresholds
}

// Classify runs the full-set pass: mark classifiable columns, apply the
// global genome-fraction filter, then tally and label every column over the
// kept voters.
func Classify(ref *genome.Sample, voters []Voter, th Thresholds) (*Table, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	L := ref.Len()
	if L == 0 {
		return nil, fmt.Errorf("%w: alignment length 0", ErrEmptyAlignment)
	}

	tb := &Table{
		Ref:          ref,
		Voters:       voters,
		Stats:        make([]SiteStat, L),
		Classifiable: make([]bool, L),
		Kept:         make([]bool, len(voters)),
		Known:        make([]int, len(voters)),
		thresholds:   th,
	}
	for c := 0; c < L; c++ {
		if genome.Cardinality(ref.Row[c]) == 1 {
			tb.Classifiable[c] = true
			tb.classifiable++
		}
	}
	if tb.classifiable == 0 {
		return nil, fmt.Errorf("%w: no classifiable columns (reference is all ambiguous or missing)", ErrEmptyAlignment)
	}

	for i, v := range voters {
		for c := 0; c < L; c++ {
			if tb.Classifiable[c] && v.Sample.KnownAt(c) {
				tb.Known[i]++
			}
		}
		tb.Kept[i] = tb.GF(i) >= th.MinGF
	}

	voting, expected := 0, 0
	for i, v := range voters {
		if tb.Kept[i] {
			voting += v.Weight
			expected += v.Weight * v.Sample.Ploidy
		}
	}

	for c := 0; c < L; c++ {
		if !tb.Classifiable[c] {
			continue
		}
		var tl Tally
		for i, v := range voters {
			if !tb.Kept[i] {
				continue
			}
			counts, known := v.Sample.CountsAt(c)
			tl = tl.Add(counts, known, v.Sample.Ploidy, v.Weight, th.MinGF)
		}
		tb.Stats[c] = tl.Finalize(voting, expected, th)
	}
	return tb, nil
}

// GF is voter i's genome fraction over classifiable columns.
func (tb *Table) GF(i int) float64 {
	return float64(tb.Known[i]) / float64(tb.classifiable)
}

// ClassifiableCount is the number of columns with a concrete reference base.
func (tb *Table) ClassifiableCount() int { return tb.classifiable }

// Thresholds returns the thresholds the table was built with.
func (tb *Table) Thresholds() Thresholds { return tb.thresholds }

// CoreColumns lists the column indexes labeled Invariant or Variant.
func (tb *Table) CoreColumns() []int {
	out := make([]int, 0, tb.classifiable)
	for c, st := range tb.Stats {
		if st.Label != Excluded {
			out = append(out, c)
		}
	}
	return out
}

// VariantColumns lists the column indexes labeled Variant.
func (tb *Table) VariantColumns() []int {
	var out []int
	for c, st := range tb.Stats {
		if st.Label == Variant {
			out = append(out, c)
		}
	}
	return out
}

// CoreFraction is the retained share of classifiable columns.
func (tb *Table) CoreFraction() float64 {
	return float64(len(tb.CoreColumns())) / float64(tb.classifiable)
}
