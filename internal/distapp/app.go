// internal/distapp/app.go

// Package distapp is the polycore-dist entry point: re-run the distance
// matrix over an already-classified alignment without reclassifying.
package distapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"polycore-core/distance"
	"polycore-core/genome"

	"polycore/internal/appcore"
	"polycore/internal/cmdutil"
	"polycore/internal/distcli"
	"polycore/internal/loader"
	"polycore/internal/runutil"
	"polycore/internal/version"
	"polycore/internal/writers"
)

// RunContext parses argv and executes one distance-only run.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := distcli.NewFlagSet("polycore-dist")
	fs.SetOutput(io.Discard)

	opts, err := distcli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			_ = outw.Flush()
			return appcore.ExitOK
		}
		fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return appcore.ExitUsage
	}
	if opts.Version {
		fmt.Fprintf(outw, "polycore-dist version %s\n", version.Version)
		_ = outw.Flush()
		return appcore.ExitOK
	}

	lg := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	return run(ctx, lg, opts, outw)
}

// Run is RunContext without external cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(ctx context.Context, lg *logrus.Logger, opts distcli.Options, outw *bufio.Writer) int {
	for _, warn := range runutil.DistanceFlagWarnings(false, opts.ChunkWidth, opts.MemMB) {
		lg.Warn(warn)
	}

	var in *loader.Input
	if err := cmdutil.Phase(lg, "load", func() error {
		var err error
		in, err = loader.LoadAlignment(ctx, opts.AlignmentFile, opts.Ploidy, !opts.NoRef)
		return err
	}); err != nil {
		return appcore.Fail(lg, err)
	}

	samples := make([]*genome.Sample, 0, len(in.Samples)+1)
	if in.Ref != nil {
		samples = append(samples, in.Ref)
	}
	samples = append(samples, in.Samples...)
	if len(samples) < 2 {
		lg.Error("need at least two genomes for a distance matrix")
		return appcore.ExitRuntime
	}

	L := samples[0].Len()
	cols := make([]int, L)
	for c := range cols {
		cols[c] = c
	}
	lg.Infof("loaded %d genomes of length %d", len(samples), L)

	var res *distance.Result
	dcfg := appcore.DistConfig{Agg: opts.DistAgg, ChunkWidth: opts.ChunkWidth, MemMB: opts.MemMB, Threads: opts.Threads}
	if err := cmdutil.Phase(lg, "distance", func() error {
		var err error
		res, err = appcore.RunDistance(ctx, lg, samples, cols, dcfg)
		return err
	}); err != nil {
		return appcore.Fail(lg, err)
	}

	specs := appcore.DistFileSpecs(res, opts.Wide, opts.Long)
	if err := cmdutil.Phase(lg, "write", func() error {
		return writers.WriteFiles(ctx, lg, opts.OutDir, specs)
	}); err != nil {
		return appcore.Fail(lg, err)
	}

	fmt.Fprintf(outw, "%d genomes, %d sites compared\n", len(samples), L)
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		return appcore.ExitRuntime
	}
	return appcore.ExitOK
}
