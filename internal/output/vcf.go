// internal/output/vcf.go
package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"polycore-core/classify"
	"polycore-core/genome"
)

// VCFSample is one genotype column: a genome's symbols at the variant
// positions, parallel to VCF.Positions.
type VCFSample struct {
	Name   string
	Ploidy int
	Row    []byte
}

// VCF is the assembled variant table. Positions are 1-based alignment
// columns; Refs and Alts parallel them.
type VCF struct {
	Contig    string
	Length    int
	Positions []int
	Refs      []byte
	Alts      [][]byte
	Samples   []VCFSample
}

// BuildAlts assembles one site's ALT alleles: the majority symbol when it
// differs from the reference base, then the classified alternates in their
// primary-first order, reference base excluded.
func BuildAlts(refBase byte, st classify.SiteStat) []byte {
	var out []byte
	if st.Majority != refBase && st.Majority != 'N' {
		out = append(out, st.Majority)
	}
	for _, a := range st.Alts {
		if a != refBase {
			out = append(out, a)
		}
	}
	return out
}

// WriteVCF writes a VCFv4.1 file with one GT-formatted row per variant
// position. Genotypes are per-copy allele indices sorted ascending; a
// genome without a call at the position gets the ploidy-sized missing
// genotype.
func WriteVCF(w io.Writer, v VCF) error {
	if _, err := fmt.Fprintf(w, "##fileformat=VCFv4.1\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "##contig=<ID=%s,length=%d>\n", v.Contig, v.Length); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "##FORMAT=<ID=GT,Number=1,Type=String,Description=\"Genotype\">\n"); err != nil {
		return err
	}

	cols := []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT"}
	for _, s := range v.Samples {
		cols = append(cols, s.Name)
	}
	if _, err := fmt.Fprintln(w, strings.Join(cols, "\t")); err != nil {
		return err
	}

	for k, pos := range v.Positions {
		ref := v.Refs[k]
		alts := v.Alts[k]

		idx := map[byte]int{ref: 0}
		altStrs := make([]string, len(alts))
		for j, a := range alts {
			idx[a] = j + 1
			altStrs[j] = string(a)
		}
		alt := strings.Join(altStrs, ",")
		if alt == "" {
			alt = "."
		}

		row := []string{v.Contig, strconv.Itoa(pos), ".", string(ref), alt, ".", ".", ".", "GT"}
		for _, s := range v.Samples {
			row = append(row, genotype(s.Row[k], s.Ploidy, idx))
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func genotype(sym byte, ploidy int, idx map[byte]int) string {
	copies, ok := genome.CopySymbols(sym, ploidy)
	if !ok {
		return missingGT(ploidy)
	}
	indices := make([]int, len(copies))
	for i, c := range copies {
		j, ok := idx[c]
		if !ok {
			return missingGT(ploidy)
		}
		indices[i] = j
	}
	sort.Ints(indices)
	parts := make([]string, len(indices))
	for i, j := range indices {
		parts[i] = strconv.Itoa(j)
	}
	return strings.Join(parts, "/")
}

func missingGT(ploidy int) string {
	if ploidy < 1 {
		ploidy = 1
	}
	parts := make([]string, ploidy)
	for i := range parts {
		parts[i] = "."
	}
	return strings.Join(parts, "/")
}
