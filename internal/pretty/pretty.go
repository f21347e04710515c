// internal/pretty/pretty.go
package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"polycore/pkg/api"
)

// RenderReport renders the human-readable run report: a totals block
// followed by one aligned row per genome, reference first.
func RenderReport(rep api.ReportV1) string {
	var b strings.Builder

	fmt.Fprintf(&b, "reference:          %s\n", rep.Reference)
	fmt.Fprintf(&b, "alignment length:   %d\n", rep.AlignmentLength)
	fmt.Fprintf(&b, "classifiable sites: %d\n", rep.Classifiable)
	fmt.Fprintf(&b, "core sites:         %d (%d invariant, %d variant, %d excluded)\n",
		rep.CoreInvariant+rep.CoreVariant, rep.CoreInvariant, rep.CoreVariant, rep.Excluded)
	fmt.Fprintf(&b, "core fraction:      %s\n", frac(rep.CoreFraction))
	fmt.Fprintf(&b, "groups:             %d (%d genomes)\n", rep.Groups, len(rep.Samples))
	b.WriteByte('\n')

	rows := [][]string{{"name", "ploidy", "source", "group", "missing", "gf", "cf", "variants", "status"}}
	for _, s := range rep.Samples {
		cf, variants := "-", "-"
		if s.CoreFraction != nil {
			cf = frac(*s.CoreFraction)
		}
		if s.Variants != nil {
			variants = strconv.FormatInt(*s.Variants, 10)
		}
		status := ""
		if s.Dropped {
			status = "dropped"
		}
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.Ploidy),
			s.PloidySource,
			strconv.Itoa(s.Group),
			strconv.Itoa(s.Missing),
			frac(s.GenomeFraction),
			cf,
			variants,
			status,
		})
	}
	writeAligned(&b, rows)
	return b.String()
}

func frac(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

// writeAligned pads every column to its widest cell, two spaces between
// columns, trailing blanks trimmed.
func writeAligned(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for _, row := range rows {
		line := make([]string, len(row))
		for i, cell := range row {
			line[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		b.WriteString(strings.TrimRight(strings.Join(line, "  "), " "))
		b.WriteByte('\n')
	}
}
