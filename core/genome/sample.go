// core/genome/sample.go
package genome

import (
	"errors"
	"fmt"
)

// ErrInvalidPloidy flags a ploidy that is non-positive or contradicts the
// ambiguity codes present in a row.
var ErrInvalidPloidy = errors.New("genome: invalid ploidy")

// PloidySource records how a sample's ploidy was established.
type PloidySource uint8

const (
	PloidyDetected PloidySource = iota // inferred from ambiguity codes
	PloidyOverride                     // supplied by the caller
)

func (s PloidySource) String() string {
	if s == PloidyOverride {
		return "override"
	}
	return "detected"
}

// Sample is one aligned genome: a raw IUPAC row plus the ploidy that tells
// the fixed-composition decoder how to read it. Read-only after construction.
type Sample struct {
	ID     string
	Ploidy int
	Source PloidySource
	Row    []byte
}

// NewSample resolves ploidy for a row and wraps it. override 0 means detect;
// override >= 1 is validated against the row (a row can encode fewer alleles
// than the ploidy holds, never more).
func NewSample(id string, row []byte, override int) (*Sample, error) {
	p, src, err := ResolvePloidy(row, override)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", id, err)
	}
	return &Sample{ID: id, Ploidy: p, Source: src, Row: row}, nil
}

// NewReference wraps a reference row. Reference ploidy is fixed at 1;
// ambiguous reference positions are legal here and become unclassifiable
// columns downstream.
func NewReference(id string, row []byte) *Sample {
	return &Sample{ID: id, Ploidy: 1, Source: PloidyOverride, Row: row}
}

// DetectPloidy infers ploidy as the largest ambiguity cardinality in the
// row, minimum 1. Unknown symbols (N, gaps) carry no ploidy signal.
func DetectPloidy(row []byte) int {
	p := 1
	for _, c := range row {
		if k := Cardinality(c); k > p {
			p = k
		}
	}
	return p
}

// ResolvePloidy applies an explicit override or falls back to detection.
// Detection is a lower bound: an override above it is legal (a tetraploid
// with no 4-allele site), an override below it is a contradiction. Overrides
// above MaxPloidy are rejected so copy counts never wrap.
func ResolvePloidy(row []byte, override int) (int, PloidySource, error) {
	if override < 0 {
		return 0, PloidyDetected, fmt.Errorf("%w: %d", ErrInvalidPloidy, override)
	}
	if override > MaxPloidy {
		return 0, PloidyOverride, fmt.Errorf(
			"%w: override %d above the supported maximum %d", ErrInvalidPloidy, override, MaxPloidy)
	}
	detected := DetectPloidy(row)
	if override == 0 {
		return detected, PloidyDetected, nil
	}
	if override < detected {
		return 0, PloidyOverride, fmt.Errorf(
			"%w: override %d but row encodes %d alleles at one position",
			ErrInvalidPloidy, override, detected)
	}
	return override, PloidyOverride, nil
}

// ValidateRow rejects rows containing non-ASCII bytes; everything else is
// representable (unrecognized ASCII decodes as missing).
func ValidateRow(row []byte) error {
	for i, c := range row {
		if c >= 0x80 {
			return fmt.Errorf("non-ASCII byte 0x%02x at position %d; expected IUPAC letters and '-'", c, i+1)
		}
	}
	return nil
}

// Len returns the aligned row length.
func (s *Sample) Len() int { return len(s.Row) }

// KnownAt reports whether the sample has a genotype call at column c.
func (s *Sample) KnownAt(c int) bool {
	_, ok := CopyCounts(s.Row[c], s.Ploidy)
	return ok
}

// CountsAt decodes the genotype at column c.
func (s *Sample) CountsAt(c int) (Counts, bool) {
	return CopyCounts(s.Row[c], s.Ploidy)
}
