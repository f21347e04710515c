// core/genome/iupac.go
package genome

/* -------------------------- IUPAC lookup table -------------------------- */

// Alphabet is the allele alphabet in rank order; rank indexes every
// per-allele count vector in this module.
const Alphabet = "ACGT"

var iupacMask [256]byte // bit0=A bit1=C bit2=G bit3=T

func init() {
	set := func(c byte, bits byte) {
		iupacMask[c] = bits
		iupacMask[c|0x20] = bits // lowercase alias
	}
	set('A', 1)     // 0001
	set('C', 2)     // 0010
	set('G', 4)     // 0100
	set('T', 8)     // 1000
	set('R', 1|4)   // A/G
	set('Y', 2|8)   // C/T
	set('S', 2|4)   // C/G
	set('W', 1|8)   // A/T
	set('K', 4|8)   // G/T
	set('M', 1|2)   // A/C
	set('B', 2|4|8) // C/G/T
	set('D', 1|4|8) // A/G/T
	set('H', 1|2|8) // A/C/T
	set('V', 1|2|4) // A/C/G
	// 'N', '-' and everything else stay 0: a genotype is either a concrete
	// allele multiset or nothing. N-as-anything belongs to primer matching,
	// not to genotype calling.
}

var popcount [16]byte

func init() {
	for m := 1; m < 16; m++ {
		popcount[m] = popcount[m>>1] + byte(m&1)
	}
}

// Mask returns the 4-bit allele mask for an IUPAC symbol, 0 for anything
// unknown (N, gaps, stray characters).
func Mask(c byte) byte { return iupacMask[c] }

// Cardinality is the number of distinct alleles an IUPAC symbol encodes.
// Unknown symbols have cardinality 0.
func Cardinality(c byte) int { return int(popcount[iupacMask[c]]) }

// SymbolFor returns the IUPAC symbol for a 4-bit allele mask ('N' for 0).
func SymbolFor(mask byte) byte {
	if mask == 0 {
		return 'N'
	}
	return maskSymbol[mask&0x0f]
}

var maskSymbol = [16]byte{
	0: 'N', 1: 'A', 2: 'C', 3: 'M', 4: 'G', 5: 'R', 6: 'S', 7: 'V',
	8: 'T', 9: 'W', 10: 'Y', 11: 'H', 12: 'K', 13: 'D', 14: 'B', 15: 'N',
}

// Counts is a per-allele copy count vector indexed by Alphabet rank.
type Counts [4]uint8

// MaxPloidy is the highest ploidy a Counts vector can represent: a
// cardinality-1 symbol stores all copies in one byte-sized slot.
// ResolvePloidy rejects overrides above it.
const MaxPloidy = 255

// Total returns the number of copies the vector accounts for.
func (k Counts) Total() int {
	return int(k[0]) + int(k[1]) + int(k[2]) + int(k[3])
}

/* ------------------------ fixed-composition decode ----------------------- */

// CopyCounts decodes one IUPAC symbol into per-allele copy counts for a
// sample of the given ploidy under the fixed-composition rule:
//
//	cardinality 1      -> all ploidy copies carry that allele
//	cardinality ploidy -> one copy of each encoded allele
//	anything else      -> no call (zero vector, ok=false)
//
// A symbol encoding more alleles than the ploidy can hold, or fewer than it
// pins down (0 < k < ploidy), is a no-call rather than a guess.
func CopyCounts(c byte, ploidy int) (Counts, bool) {
	var out Counts
	m := iupacMask[c]
	k := int(popcount[m])
	switch {
	case k == 0 || k > ploidy:
		return out, false
	case k == 1:
		for i := 0; i < 4; i++ {
			if m&(1<<i) != 0 {
				out[i] = uint8(ploidy)
			}
		}
		return out, true
	case k == ploidy:
		for i := 0; i < 4; i++ {
			if m&(1<<i) != 0 {
				out[i] = 1
			}
		}
		return out, true
	default:
		return out, false
	}
}

// CopySymbols decodes one IUPAC symbol into the ploidy-sized allele list in
// Alphabet rank order ("R" at ploidy 2 -> "AG"). ok mirrors CopyCounts.
func CopySymbols(c byte, ploidy int) ([]byte, bool) {
	counts, ok := CopyCounts(c, ploidy)
	if !ok {
		return nil, false
	}
	out := make([]byte, 0, ploidy)
	for i := 0; i < 4; i++ {
		for n := uint8(0); n < counts[i]; n++ {
			out = append(out, Alphabet[i])
		}
	}
	return out, true
}
