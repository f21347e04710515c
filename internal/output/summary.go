// internal/output/summary.go
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"polycore/pkg/api"
)

// WriteSummaryCSV writes one row per input genome, reference first.
// Dropped genomes and distance-skipping runs leave core_fraction and
// variants blank rather than inventing zeros.
func WriteSummaryCSV(w io.Writer, rep api.ReportV1) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}
	for _, s := range rep.Samples {
		cf, variants := "", ""
		if s.CoreFraction != nil {
			cf = fmtFloat6(*s.CoreFraction)
		}
		if s.Variants != nil {
			variants = strconv.FormatInt(*s.Variants, 10)
		}
		row := []string{
			s.Name,
			strconv.Itoa(s.Length),
			strconv.Itoa(s.Missing),
			fmtFloat6(s.GenomeFraction),
			cf,
			variants,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrajectoryCSV writes the soft-core admissions in order.
func WriteTrajectoryCSV(w io.Writer, points []api.TrajectoryPointV1) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TrajectoryHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{strconv.Itoa(p.K), p.Sample, fmtFloat6(p.CoreFraction)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFconst writes the invariant-site count line iqtree consumes via
// -fconst: A,C,G,T counts keyed by the reference symbol.
func WriteFconst(w io.Writer, counts [4]int) error {
	_, err := fmt.Fprintf(w, "%d,%d,%d,%d\n", counts[0], counts[1], counts[2], counts[3])
	return err
}
