// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"

	"polycore/internal/cliutil"
)

// Common holds the CLI fields shared by polycore and polycore-dist.
type Common struct {
	// Input
	SampleFiles []string

	// Genotype
	Ploidy int // 0 = auto-detect per sample

	// Distance
	DistAgg    string // best | mean
	ChunkWidth int    // 0 = auto from memory budget
	MemMB      int    // 0 = probe

	// Performance
	Threads int // 0 = GOMAXPROCS

	// Output
	OutDir string

	// Misc
	Quiet   bool
	Verbose bool
	Version bool
}

// sliceValue appends each value to a *[]string (for --samples/-s).
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return fmt.Sprint(*s.dst)
}
func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	sampleVal := &sliceValue{dst: &c.SampleFiles}
	fs.Var(sampleVal, "samples", "sample FASTA file or glob (repeatable) or '-'")
	fs.Var(sampleVal, "s", "alias of --samples")

	fs.IntVar(&c.Ploidy, "ploidy", 0, "genome copies per sample (0=auto-detect) [0]")
	fs.IntVar(&c.Ploidy, "p", 0, "alias of --ploidy")

	fs.StringVar(&c.DistAgg, "dist-agg", "best", "copy-pair aggregation: best | mean [best]")
	fs.IntVar(&c.ChunkWidth, "chunk-width", 0, "distance chunk width in columns (0=auto from memory) [0]")
	fs.IntVar(&c.MemMB, "mem-mb", 0, "memory budget in MiB for distance chunks (0=probe) [0]")

	fs.IntVar(&c.Threads, "threads", 0, "worker threads (0=all CPUs) [0]")
	fs.IntVar(&c.Threads, "t", 0, "alias of --threads")

	fs.StringVar(&c.OutDir, "out-dir", ".", "directory for output files [.]")
	fs.StringVar(&c.OutDir, "o", ".", "alias of --out-dir")

	fs.BoolVar(&c.Quiet, "quiet", false, "log warnings only [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Verbose, "verbose", false, "log per-phase debug detail [false]")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// AfterParse folds positionals into the sample list and expands globs.
func AfterParse(c *Common, posArgs []string) error {
	paths := append(append([]string{}, c.SampleFiles...), posArgs...)
	exp, err := cliutil.ExpandPaths(paths)
	if err != nil {
		return err
	}
	c.SampleFiles = exp
	return Validate(c)
}

// Validate applies the shared CLI invariants.
func Validate(c *Common) error {
	if c.Ploidy < 0 {
		return errors.New("--ploidy must be ≥ 0")
	}
	if c.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if c.ChunkWidth < 0 {
		return errors.New("--chunk-width must be ≥ 0")
	}
	if c.MemMB < 0 {
		return errors.New("--mem-mb must be ≥ 0")
	}
	switch c.DistAgg {
	case "best", "best-match", "mean":
	default:
		return fmt.Errorf("invalid --dist-agg %q (want best or mean)", c.DistAgg)
	}
	if c.OutDir == "" {
		return errors.New("--out-dir must not be empty")
	}
	return nil
}
