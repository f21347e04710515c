// internal/appcore/core.go

// Package appcore carries the run machinery shared by polycore and
// polycore-dist: exit codes, error mapping, the distance phase, and the
// matrix file specs.
package appcore

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"polycore-core/distance"
	"polycore-core/genome"

	"polycore/internal/memprobe"
	"polycore/internal/output"
	"polycore/internal/runutil"
	"polycore/internal/writers"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 2
	ExitRuntime     = 3
	ExitInterrupted = 130
)

// Fail maps a runtime error to its exit code. Interruption exits silently;
// everything else is logged as an error.
func Fail(lg *logrus.Logger, err error) int {
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	lg.Error(err)
	return ExitRuntime
}

// DistConfig collects the distance knobs both binaries expose.
type DistConfig struct {
	Agg        string
	ChunkWidth int
	MemMB      int
	Threads    int
}

// RunDistance sizes the memory budget and executes one matrix run.
func RunDistance(ctx context.Context, lg *logrus.Logger, samples []*genome.Sample, cols []int, cfg DistConfig) (*distance.Result, error) {
	agg, err := distance.ParseAggregation(cfg.Agg)
	if err != nil {
		return nil, err
	}
	budget := memprobe.Budget(cfg.MemMB, memprobe.Available)
	workers := runutil.EffectiveThreads(cfg.Threads)
	lg.Debugf("distance: %d genomes, %d sites, %d workers, budget %d B",
		len(samples), len(cols), workers, budget)
	eng := distance.New(distance.Config{
		Aggregation: agg,
		ChunkWidth:  cfg.ChunkWidth,
		Budget:      budget,
		Workers:     workers,
	})
	return eng.Run(ctx, samples, cols)
}

// DistFileSpecs builds the matrix file specs for the selected shapes.
func DistFileSpecs(res *distance.Result, wide, long bool) []writers.FileSpec {
	var specs []writers.FileSpec
	if wide {
		specs = append(specs, writers.FileSpec{Name: output.FileDistWide, Write: func(w io.Writer) error {
			return output.WriteDistWide(w, res.IDs, res.D)
		}})
	}
	if long {
		specs = append(specs, writers.FileSpec{Name: output.FileDistLong, Write: func(w io.Writer) error {
			return output.WriteDistLong(w, res)
		}})
	}
	return specs
}
