// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"polycore/internal/clibase"
	"polycore/internal/cliutil"
	"polycore/internal/config"
)

// Orderings for progressive admission.
const (
	OrderGF    = "gf"
	OrderInput = "input"
)

// Site scopes for the distance matrix.
const (
	SitesVariant = "variant"
	SitesCore    = "core"
)

// Options holds all polycore CLI flags and arguments.
type Options struct {
	clibase.Common

	RefFile string

	// Classification thresholds
	MinGF float64
	MinCF float64
	MinPF float64
	MinPN int

	// Progressive core
	Progressive bool
	Order       string // gf | input

	// Voting / distance scope
	IncludeRef bool
	DistSites  string // variant | core
	NoDist     bool

	// Report
	SummaryFormat string // text | json | csv
	ConfigFile    string

	Examples bool
}

// PrintExamples writes the polycore quickstart block.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "polycore", func(w io.Writer) {
		fmt.Fprintln(w, "  # Core genome of three diploid samples")
		fmt.Fprintln(w, "  polycore --ref ref.fasta --ploidy 2 s1.fasta s2.fasta s3.fasta")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "  # Loose core threshold, skip the distance matrix")
		fmt.Fprintln(w, "  polycore --ref ref.fasta --min-cf 0.8 --no-dist --samples 'genomes/*.fa.gz'")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "  # Re-run distances from a previous core alignment")
		fmt.Fprintln(w, "  polycore-dist --dist-agg mean out/core.aln")
	})
}

// NewFlagSet returns a configured FlagSet with the polycore usage text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "polyploid-aware core-genome analysis", func(out io.Writer, def func(string) string) {
		fmt.Fprintf(out, "Usage:\n")
		fmt.Fprintf(out, "  %s --ref ref.fasta sample1.fasta sample2.fasta.gz ...\n", name)
		fmt.Fprintf(out, "  %s --ref ref.fasta --samples 'genomes/*.fasta' --ploidy 2\n\n", name)

		fmt.Fprintln(out, "Reference:")
		fmt.Fprintln(out, "  -r, --ref file              Reference FASTA (required)")

		fmt.Fprintln(out, "\nClassification:")
		fmt.Fprintf(out, "      --min-gf float          Min genome fraction per sample and site [%s]\n", def("min-gf"))
		fmt.Fprintf(out, "      --min-cf float          Min called fraction for a core site [%s]\n", def("min-cf"))
		fmt.Fprintf(out, "      --min-pf float          Min alternate-allele fraction for a variant [%s]\n", def("min-pf"))
		fmt.Fprintf(out, "      --min-pn int            Min samples carrying the alternate [%s]\n", def("min-pn"))
		fmt.Fprintf(out, "      --include-ref           Let the reference vote [%s]\n", def("include-ref"))

		fmt.Fprintln(out, "\nProgressive core:")
		fmt.Fprintf(out, "      --no-progressive        Skip the soft-core trajectory [%s]\n", def("no-progressive"))
		fmt.Fprintf(out, "      --order string          Admission order: gf | input [%s]\n", def("order"))

		fmt.Fprintln(out, "\nDistance scope:")
		fmt.Fprintf(out, "      --dist-sites string     Sites compared: variant | core [%s]\n", def("dist-sites"))
		fmt.Fprintf(out, "      --no-dist               Skip the distance matrix [%s]\n", def("no-dist"))

		fmt.Fprintln(out, "\nReport:")
		fmt.Fprintf(out, "      --summary-format string Stdout report: text | json | csv [%s]\n", def("summary-format"))
		fmt.Fprintln(out, "      --config file           YAML run file; explicit flags win")
		fmt.Fprintln(out, "      --examples              Print quickstart examples and exit")
	})
	return fs
}

// ParseArgs registers and parses all flags, applies an optional config
// file to unset ones, and validates. Sample paths may be positional.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help, noProg bool

	clibase.Register(fs, &opt.Common)

	fs.StringVar(&opt.RefFile, "ref", "", "reference FASTA [*]")
	fs.StringVar(&opt.RefFile, "r", "", "alias of --ref")

	fs.Float64Var(&opt.MinGF, "min-gf", 0.9, "min genome fraction per sample and per site [0.9]")
	fs.Float64Var(&opt.MinCF, "min-cf", 0.95, "min called fraction for a core site [0.95]")
	fs.Float64Var(&opt.MinPF, "min-pf", 0, "min alternate-allele fraction for a variant [0]")
	fs.IntVar(&opt.MinPN, "min-pn", 0, "min samples carrying the alternate [0]")

	fs.BoolVar(&opt.Progressive, "progressive", true, "emit the soft-core trajectory [true]")
	fs.BoolVar(&noProg, "no-progressive", false, "skip the soft-core trajectory [false]")
	fs.StringVar(&opt.Order, "order", OrderGF, "admission order: gf | input [gf]")

	fs.BoolVar(&opt.IncludeRef, "include-ref", false, "let the reference vote [false]")
	fs.StringVar(&opt.DistSites, "dist-sites", "variant", "distance site scope: variant | core [variant]")
	fs.BoolVar(&opt.NoDist, "no-dist", false, "skip the distance matrix [false]")

	fs.StringVar(&opt.SummaryFormat, "summary-format", "text", "stdout report: text | json | csv [text]")
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML run file; explicit flags win")

	fs.BoolVar(&opt.Examples, "examples", false, "print quickstart examples and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")
	fs.BoolVar(&help, "help", false, "show this help message [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Examples {
		return opt, clibase.ErrPrintedAndExitOK
	}
	if opt.Version {
		return opt, nil
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if opt.ConfigFile != "" {
		cf, err := config.Load(opt.ConfigFile)
		if err != nil {
			return opt, err
		}
		applyConfig(&opt, cf, set, len(posArgs) > 0)
	}
	if noProg {
		opt.Progressive = false
	}

	if err := clibase.AfterParse(&opt.Common, posArgs); err != nil {
		return opt, err
	}
	return opt, validate(&opt)
}

// applyConfig copies file values onto flags the user left unset.
func applyConfig(o *Options, f *config.File, set map[string]bool, havePos bool) {
	if f.Ref != nil && !set["ref"] && !set["r"] {
		o.RefFile = *f.Ref
	}
	if len(f.Samples) > 0 && !set["samples"] && !set["s"] && !havePos {
		o.SampleFiles = append(o.SampleFiles, f.Samples...)
	}
	if f.Ploidy != nil && !set["ploidy"] && !set["p"] {
		o.Ploidy = *f.Ploidy
	}
	if f.MinGF != nil && !set["min-gf"] {
		o.MinGF = *f.MinGF
	}
	if f.MinCF != nil && !set["min-cf"] {
		o.MinCF = *f.MinCF
	}
	if f.MinPF != nil && !set["min-pf"] {
		o.MinPF = *f.MinPF
	}
	if f.MinPN != nil && !set["min-pn"] {
		o.MinPN = *f.MinPN
	}
	if f.Progressive != nil && !set["progressive"] && !set["no-progressive"] {
		o.Progressive = *f.Progressive
	}
	if f.Order != nil && !set["order"] {
		o.Order = *f.Order
	}
	if f.IncludeRef != nil && !set["include-ref"] {
		o.IncludeRef = *f.IncludeRef
	}
	if f.DistSites != nil && !set["dist-sites"] {
		o.DistSites = *f.DistSites
	}
	if f.DistAgg != nil && !set["dist-agg"] {
		o.DistAgg = *f.DistAgg
	}
	if f.NoDist != nil && !set["no-dist"] {
		o.NoDist = *f.NoDist
	}
	if f.ChunkWidth != nil && !set["chunk-width"] {
		o.ChunkWidth = *f.ChunkWidth
	}
	if f.MemMB != nil && !set["mem-mb"] {
		o.MemMB = *f.MemMB
	}
	if f.Threads != nil && !set["threads"] && !set["t"] {
		o.Threads = *f.Threads
	}
	if f.OutDir != nil && !set["out-dir"] && !set["o"] {
		o.OutDir = *f.OutDir
	}
	if f.SummaryFormat != nil && !set["summary-format"] {
		o.SummaryFormat = *f.SummaryFormat
	}
}

func validate(o *Options) error {
	if o.RefFile == "" {
		return errors.New("provide --ref")
	}
	if len(o.SampleFiles) == 0 {
		return errors.New("at least one sample FASTA is required")
	}
	if o.MinGF < 0 || o.MinGF > 1 {
		return fmt.Errorf("--min-gf must be within [0,1], got %g", o.MinGF)
	}
	if o.MinCF < 0 || o.MinCF > 1 {
		return fmt.Errorf("--min-cf must be within [0,1], got %g", o.MinCF)
	}
	if o.MinPF < 0 || o.MinPF > 1 {
		return fmt.Errorf("--min-pf must be within [0,1], got %g", o.MinPF)
	}
	if o.MinPN < 0 {
		return errors.New("--min-pn must be ≥ 0")
	}
	if o.Order != OrderGF && o.Order != OrderInput {
		return fmt.Errorf("invalid --order %q (want gf or input)", o.Order)
	}
	if o.DistSites != SitesVariant && o.DistSites != SitesCore {
		return fmt.Errorf("invalid --dist-sites %q (want variant or core)", o.DistSites)
	}
	switch o.SummaryFormat {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid --summary-format %q (want text, json or csv)", o.SummaryFormat)
	}
	return nil
}
