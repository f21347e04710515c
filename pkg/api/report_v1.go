// pkg/api/report_v1.go
package api

// ReportV1 is the stable JSON schema for a run report.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ReportV1 struct {
	Version         string              `json:"version"`
	Reference       string              `json:"reference"`
	AlignmentLength int                 `json:"alignment_length"`
	Classifiable    int                 `json:"classifiable_sites"`
	CoreInvariant   int                 `json:"core_invariant"`
	CoreVariant     int                 `json:"core_variant"`
	Excluded        int                 `json:"excluded"`
	CoreFraction    float64             `json:"core_fraction"`
	Groups          int                 `json:"groups"`
	Samples         []SampleV1          `json:"samples"`
	Trajectory      []TrajectoryPointV1 `json:"trajectory,omitempty"`
}

// SampleV1 is one input genome's summary row, the reference included.
// CoreFraction is nil for genomes that never entered the trajectory;
// Variants is nil for dropped genomes and distance-skipping runs.
type SampleV1 struct {
	Name           string   `json:"name"`
	Ploidy         int      `json:"ploidy"`
	PloidySource   string   `json:"ploidy_source"` // "detected" | "override"
	Group          int      `json:"group"`
	Length         int      `json:"length"`  // classifiable sites
	Missing        int      `json:"missing"` // classifiable sites without a call
	GenomeFraction float64  `json:"genome_fraction"`
	CoreFraction   *float64 `json:"core_fraction,omitempty"`
	Variants       *int64   `json:"variants,omitempty"`
	Dropped        bool     `json:"dropped,omitempty"`
}

// TrajectoryPointV1 is one soft-core admission step.
type TrajectoryPointV1 struct {
	K            int     `json:"k"`
	Sample       string  `json:"sample"`
	CoreFraction float64 `json:"core_fraction"`
}
