// internal/distcli/options.go
package distcli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"polycore/internal/clibase"
	"polycore/internal/cliutil"
)

// Options holds the polycore-dist flags: one classified alignment in, the
// distance matrix files out.
type Options struct {
	clibase.Common

	AlignmentFile string
	NoRef         bool
	Wide          bool
	Long          bool
}

// NewFlagSet returns a configured FlagSet with the polycore-dist usage text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "pairwise distances over a classified alignment", func(out io.Writer, def func(string) string) {
		fmt.Fprintf(out, "Usage:\n")
		fmt.Fprintf(out, "  %s core.aln\n", name)
		fmt.Fprintf(out, "  %s --no-ref --ploidy 2 --long core.aln\n\n", name)

		fmt.Fprintln(out, "Alignment:")
		fmt.Fprintf(out, "      --no-ref                Treat the first record as a sample, not the reference [%s]\n", def("no-ref"))

		fmt.Fprintln(out, "\nMatrix files:")
		fmt.Fprintf(out, "      --wide                  Write only %s [%s]\n", "dist_wide.csv", def("wide"))
		fmt.Fprintf(out, "      --long                  Write only %s [%s]\n", "dist_long.csv", def("long"))
	})
	return fs
}

// ParseArgs registers and parses all flags. The alignment path is the one
// positional argument (or a single --samples value).
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	clibase.Register(fs, &opt.Common)

	fs.BoolVar(&opt.NoRef, "no-ref", false, "treat the first record as a sample [false]")
	fs.BoolVar(&opt.Wide, "wide", false, "write only dist_wide.csv [false]")
	fs.BoolVar(&opt.Long, "long", false, "write only dist_long.csv [false]")

	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")
	fs.BoolVar(&help, "help", false, "show this help message [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	if err := clibase.AfterParse(&opt.Common, posArgs); err != nil {
		return opt, err
	}

	switch len(opt.SampleFiles) {
	case 0:
		return opt, errors.New("provide one classified alignment FASTA")
	case 1:
		opt.AlignmentFile = opt.SampleFiles[0]
	default:
		return opt, fmt.Errorf("expected one alignment, got %d files", len(opt.SampleFiles))
	}

	// Neither shape flag means both files.
	if !opt.Wide && !opt.Long {
		opt.Wide, opt.Long = true, true
	}
	return opt, nil
}
