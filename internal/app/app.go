// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"polycore-core/classify"
	"polycore-core/collapse"
	"polycore-core/distance"
	"polycore-core/expand"
	"polycore-core/genome"
	"polycore-core/progressive"

	"polycore/internal/appcore"
	"polycore/internal/cli"
	"polycore/internal/clibase"
	"polycore/internal/cmdutil"
	"polycore/internal/loader"
	"polycore/internal/output"
	"polycore/internal/runutil"
	"polycore/internal/version"
	"polycore/internal/writers"
	"polycore/pkg/api"
)

// RunContext parses argv and executes one full analysis run.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("polycore")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flushExit(outw, stderr, appcore.ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flushExit(outw, stderr, appcore.ExitOK)
		}
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			cli.PrintExamples(outw)
			return flushExit(outw, stderr, appcore.ExitOK)
		}
		fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return appcore.ExitUsage
	}
	if opts.Version {
		fmt.Fprintf(outw, "polycore version %s\n", version.Version)
		return flushExit(outw, stderr, appcore.ExitOK)
	}

	lg := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	return run(ctx, lg, opts, outw, stderr)
}

// Run is RunContext without external cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(ctx context.Context, lg *logrus.Logger, opts cli.Options, outw *bufio.Writer, stderr io.Writer) int {
	for _, warn := range runutil.DistanceFlagWarnings(opts.NoDist, opts.ChunkWidth, opts.MemMB) {
		lg.Warn(warn)
	}
	threads := runutil.EffectiveThreads(opts.Threads)

	var in *loader.Input
	if err := cmdutil.Phase(lg, "load", func() error {
		var err error
		in, err = loader.Load(ctx, lg, opts.RefFile, opts.SampleFiles, opts.Ploidy, threads)
		return err
	}); err != nil {
		return appcore.Fail(lg, err)
	}
	lg.Infof("loaded %d genomes of length %d", len(in.Samples)+1, in.Ref.Len())

	part := collapse.Collapse(in.Ref, in.Samples)
	lg.Infof("collapsed %d samples into %d groups", len(in.Samples), len(part.SampleGroups()))

	voters := buildVoters(in, part, opts.IncludeRef)
	th := classify.Thresholds{MinGF: opts.MinGF, MinCF: opts.MinCF, MinPF: opts.MinPF, MinPN: opts.MinPN}

	var table *classify.Table
	if err := cmdutil.Phase(lg, "classify", func() error {
		var err error
		table, err = classify.Classify(in.Ref, voters, th)
		return err
	}); err != nil {
		return appcore.Fail(lg, err)
	}

	inputs := append([]*genome.Sample{in.Ref}, in.Samples...)
	exp, err := expand.New(inputs, part)
	if err != nil {
		return appcore.Fail(lg, err)
	}

	gfG, knownG, keptG := groupStats(table, part, opts.IncludeRef)
	keptIn := exp.BoolsFromGroups(keptG)
	warnDropped(lg, table, part, exp, opts, keptG)

	coreCols := table.CoreColumns()
	varCols := table.VariantColumns()
	lg.Infof("core: %d sites of %d classifiable (%d variant)",
		len(coreCols), table.ClassifiableCount(), len(varCols))

	// Soft-core trajectory over the kept voters. Without a progressive run
	// every kept genome reports the final core fraction instead of its
	// fraction at admission.
	admissionCF := make([]float64, len(part.Groups))
	for g := range admissionCF {
		if keptG[g] {
			admissionCF[g] = table.CoreFraction()
		} else {
			admissionCF[g] = math.NaN()
		}
	}
	var points []api.TrajectoryPointV1
	if opts.Progressive {
		ordered := orderVoters(voters, table, opts.IncludeRef, opts.Order)
		if err := cmdutil.Phase(lg, "progressive", func() error {
			tr := progressive.New(ordered, table.Classifiable, th)
			for _, p := range tr.All() {
				points = append(points, api.TrajectoryPointV1{K: p.K, Sample: p.SampleID, CoreFraction: p.CoreFraction})
			}
			return nil
		}); err != nil {
			return appcore.Fail(lg, err)
		}
		repGroup := make(map[string]int, len(part.Groups))
		for gid, g := range part.Groups {
			repGroup[g.Rep.ID] = gid
		}
		for _, p := range points {
			if gid, ok := repGroup[p.Sample]; ok {
				admissionCF[gid] = p.CoreFraction
			}
		}
	}

	// Distances over the kept genomes, reference row first. The summary's
	// variant counts always come from the variant-site pass; the written
	// matrix honors --dist-sites.
	distSamples := make([]*genome.Sample, 0, len(inputs))
	distSamples = append(distSamples, in.Ref)
	for i := 1; i < len(inputs); i++ {
		if keptIn[i] {
			distSamples = append(distSamples, inputs[i])
		}
	}
	var dres, vres *distance.Result
	if !opts.NoDist {
		dcfg := appcore.DistConfig{Agg: opts.DistAgg, ChunkWidth: opts.ChunkWidth, MemMB: opts.MemMB, Threads: opts.Threads}
		if err := cmdutil.Phase(lg, "distance", func() error {
			var err error
			vres, err = appcore.RunDistance(ctx, lg, distSamples, varCols, dcfg)
			if err != nil {
				return err
			}
			if opts.DistSites == cli.SitesVariant {
				dres = vres
				return nil
			}
			dres, err = appcore.RunDistance(ctx, lg, distSamples, coreCols, dcfg)
			return err
		}); err != nil {
			return appcore.Fail(lg, err)
		}
	}

	rep := buildReport(in, part, table, exp, inputs, opts, gfG, knownG, keptIn, admissionCF, vres, points)

	counts := fconstCounts(table)
	mult, mixed := uniformPloidy(in, keptIn)
	if mixed {
		lg.Warn("mixed ploidies among kept samples; fconst counts stay per single copy")
	}
	for r := range counts {
		counts[r] *= mult
	}

	specs := fileSpecs(in, table, exp, opts, keptIn, coreCols, varCols, rep, counts, dres)
	if err := cmdutil.Phase(lg, "write", func() error {
		return writers.WriteFiles(ctx, lg, opts.OutDir, specs)
	}); err != nil {
		return appcore.Fail(lg, err)
	}

	if err := writers.WriteReport(opts.SummaryFormat, outw, rep); err != nil {
		if writers.IsBrokenPipe(err) {
			return appcore.ExitOK
		}
		return appcore.Fail(lg, err)
	}
	return flushExit(outw, stderr, appcore.ExitOK)
}

func flushExit(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return appcore.ExitOK
	} else if err != nil {
		fmt.Fprintln(stderr, err)
		return appcore.ExitRuntime
	}
	return code
}

// buildVoters turns the collapse partition into classifier voters: one per
// sample group weighted by its size, plus the reference when it votes.
func buildVoters(in *loader.Input, part *collapse.Result, includeRef bool) []classify.Voter {
	voters := make([]classify.Voter, 0, len(part.Groups))
	if includeRef {
		voters = append(voters, classify.Voter{Sample: in.Ref, Weight: 1})
	}
	for _, g := range part.SampleGroups() {
		voters = append(voters, classify.Voter{Sample: g.Rep, Weight: g.Size()})
	}
	return voters
}

// voterGroup maps a voter index to its collapse group id.
func voterGroup(vi int, includeRef bool) int {
	if includeRef {
		return vi
	}
	return vi + 1
}

// groupStats spreads the per-voter classification metrics onto group ids,
// presetting the reference group (fully known, always kept).
func groupStats(table *classify.Table, part *collapse.Result, includeRef bool) (gf []float64, known []int, kept []bool) {
	G := len(part.Groups)
	gf = make([]float64, G)
	known = make([]int, G)
	kept = make([]bool, G)
	gf[0], known[0], kept[0] = 1, table.ClassifiableCount(), true
	for vi := range table.Voters {
		g := voterGroup(vi, includeRef)
		gf[g] = table.GF(vi)
		known[g] = table.Known[vi]
		kept[g] = table.Kept[vi]
	}
	return gf, known, kept
}

func warnDropped(lg *logrus.Logger, table *classify.Table, part *collapse.Result, exp *expand.Expander, opts cli.Options, keptG []bool) {
	for vi := range table.Voters {
		if table.Kept[vi] {
			continue
		}
		g := voterGroup(vi, opts.IncludeRef)
		for _, m := range part.Groups[g].Members {
			lg.Warnf("dropping %s: genome fraction %.4f below min-gf %g", exp.ID(m), table.GF(vi), opts.MinGF)
		}
	}
}

// orderVoters selects the kept voters in admission order: the reference
// pinned first when it votes, then by descending genome fraction or input
// order.
func orderVoters(voters []classify.Voter, table *classify.Table, includeRef bool, order string) []classify.Voter {
	var pinned []classify.Voter
	start := 0
	if includeRef && len(voters) > 0 && table.Kept[0] {
		pinned = append(pinned, voters[0])
		start = 1
	}
	kept := make([]classify.Voter, 0, len(voters))
	gf := make([]float64, 0, len(voters))
	for vi := start; vi < len(voters); vi++ {
		if table.Kept[vi] {
			kept = append(kept, voters[vi])
			gf = append(gf, table.GF(vi))
		}
	}
	if order == cli.OrderGF {
		kept = progressive.OrderByGF(kept, gf)
	}
	return append(pinned, kept...)
}

func buildReport(
	in *loader.Input,
	part *collapse.Result,
	table *classify.Table,
	exp *expand.Expander,
	inputs []*genome.Sample,
	opts cli.Options,
	gfG []float64,
	knownG []int,
	keptIn []bool,
	admissionCF []float64,
	vres *distance.Result,
	points []api.TrajectoryPointV1,
) api.ReportV1 {
	L := table.ClassifiableCount()
	gfIn := exp.FloatsFromGroups(gfG)
	knownIn := exp.IntsFromGroups(knownG)
	cfIn := exp.FloatsFromGroups(admissionCF)

	distIndex := map[string]int{}
	if vres != nil {
		for i, id := range vres.IDs {
			distIndex[id] = i
		}
	}

	samples := make([]api.SampleV1, 0, exp.Len())
	for i := 0; i < exp.Len(); i++ {
		sv := api.SampleV1{
			Name:           exp.ID(i),
			Ploidy:         inputs[i].Ploidy,
			PloidySource:   inputs[i].Source.String(),
			Group:          exp.GroupOf(i),
			Length:         L,
			Missing:        L - knownIn[i],
			GenomeFraction: gfIn[i],
			Dropped:        !keptIn[i],
		}
		if !math.IsNaN(cfIn[i]) {
			cf := cfIn[i]
			sv.CoreFraction = &cf
		}
		if vres != nil && keptIn[i] {
			if j, ok := distIndex[sv.Name]; ok {
				v := vres.DiffUnits(0, j)
				sv.Variants = &v
			}
		}
		samples = append(samples, sv)
	}

	coreCols := table.CoreColumns()
	varCols := table.VariantColumns()
	return api.ReportV1{
		Version:         version.Version,
		Reference:       in.Ref.ID,
		AlignmentLength: in.Ref.Len(),
		Classifiable:    L,
		CoreInvariant:   len(coreCols) - len(varCols),
		CoreVariant:     len(varCols),
		Excluded:        L - len(coreCols),
		CoreFraction:    table.CoreFraction(),
		Groups:          len(part.SampleGroups()),
		Samples:         samples,
		Trajectory:      points,
	}
}

// fconstCounts tallies CORE-INVARIANT columns by their reference symbol in
// Alphabet rank order.
func fconstCounts(table *classify.Table) [4]int {
	var out [4]int
	for c, st := range table.Stats {
		if st.Label != classify.Invariant {
			continue
		}
		if r := strings.IndexByte(genome.Alphabet, table.Ref.Row[c]); r >= 0 {
			out[r]++
		}
	}
	return out
}

// uniformPloidy reports the shared ploidy of the kept samples, or (1, true)
// when they disagree.
func uniformPloidy(in *loader.Input, keptIn []bool) (int, bool) {
	p := 0
	for i, s := range in.Samples {
		if !keptIn[i+1] {
			continue
		}
		switch {
		case p == 0:
			p = s.Ploidy
		case s.Ploidy != p:
			return 1, true
		}
	}
	if p == 0 {
		p = 1
	}
	return p, false
}

func fileSpecs(
	in *loader.Input,
	table *classify.Table,
	exp *expand.Expander,
	opts cli.Options,
	keptIn []bool,
	coreCols, varCols []int,
	rep api.ReportV1,
	counts [4]int,
	dres *distance.Result,
) []writers.FileSpec {
	names := make([]string, 0, exp.Len())
	fullRows := make([][]byte, 0, exp.Len())
	varRows := make([][]byte, 0, exp.Len())
	for i := 0; i < exp.Len(); i++ {
		if i > 0 && !keptIn[i] {
			continue
		}
		names = append(names, exp.ID(i))
		fullRows = append(fullRows, exp.RowAt(i, coreCols))
		varRows = append(varRows, exp.RowAt(i, varCols))
	}

	vcf := buildVCF(in, table, exp, keptIn, varCols)

	specs := []writers.FileSpec{
		{Name: output.FileCoreFull, Write: func(w io.Writer) error { return output.WriteAlignment(w, names, fullRows) }},
		{Name: output.FileCore, Write: func(w io.Writer) error { return output.WriteAlignment(w, names, varRows) }},
		{Name: output.FileVCF, Write: func(w io.Writer) error { return output.WriteVCF(w, vcf) }},
		{Name: output.FileSummary, Write: func(w io.Writer) error { return output.WriteSummaryCSV(w, rep) }},
		{Name: output.FileFconst, Write: func(w io.Writer) error { return output.WriteFconst(w, counts) }},
	}
	if opts.Progressive {
		specs = append(specs, writers.FileSpec{Name: output.FileTrajectory, Write: func(w io.Writer) error {
			return output.WriteTrajectoryCSV(w, rep.Trajectory)
		}})
	}
	if dres != nil {
		specs = append(specs, appcore.DistFileSpecs(dres, true, true)...)
	}
	return specs
}

func buildVCF(in *loader.Input, table *classify.Table, exp *expand.Expander, keptIn []bool, varCols []int) output.VCF {
	positions := make([]int, len(varCols))
	refs := make([]byte, len(varCols))
	alts := make([][]byte, len(varCols))
	for k, c := range varCols {
		positions[k] = c + 1
		refs[k] = in.Ref.Row[c]
		alts[k] = output.BuildAlts(in.Ref.Row[c], table.Stats[c])
	}
	samples := make([]output.VCFSample, 0, exp.Len())
	for i := 0; i < exp.Len(); i++ {
		if i > 0 && !keptIn[i] {
			continue
		}
		s := exp.SampleOf(i)
		samples = append(samples, output.VCFSample{
			Name:   exp.ID(i),
			Ploidy: s.Ploidy,
			Row:    exp.RowAt(i, varCols),
		})
	}
	return output.VCF{
		Contig:    in.Ref.ID,
		Length:    in.Ref.Len(),
		Positions: positions,
		Refs:      refs,
		Alts:      alts,
		Samples:   samples,
	}
}
