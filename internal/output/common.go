// internal/output/common.go
package output

import (
	"math"
	"strconv"
)

// Fixed output file names, written under --out-dir.
const (
	FileCoreFull   = "core.full.aln"
	FileCore       = "core.aln"
	FileVCF        = "core.vcf"
	FileDistWide   = "dist_wide.csv"
	FileDistLong   = "dist_long.csv"
	FileSummary    = "summary.csv"
	FileTrajectory = "core_trajectory.csv"
	FileFconst     = "fconst.txt"
)

// Canonical CSV header rows. Keep these as the single source of truth;
// all writers and tests should use them.
var (
	SummaryHeader    = []string{"name", "length", "missing", "genome_fraction", "core_fraction", "variants"}
	DistLongHeader   = []string{"sample1", "sample2", "distance", "diff", "compared"}
	TrajectoryHeader = []string{"k", "sample", "core_fraction"}
)

// fmtFloat6 renders a fraction with 6-decimal precision; NaN (no shared
// observation) renders empty so spreadsheets see a blank cell.
func fmtFloat6(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
