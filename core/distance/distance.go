// core/distance/distance.go
package distance

import (
	"context"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"polycore-core/genome"
)

// Aggregation folds per-copy comparisons into one scalar per sample pair.
type Aggregation uint8

const (
	// BestMatch counts the copies left unmatched by a maximal matching
	// between the two unphased copy multisets, scaled by min(p_i, p_j).
	// Copy order carries no phase information, so this is the policy that
	// cannot overstate distance.
	BestMatch Aggregation = iota
	// Mean averages mismatches over all p_i x p_j copy pairings.
	Mean
)

func (a Aggregation) String() string {
	if a == Mean {
		return "mean"
	}
	return "best"
}

// ParseAggregation maps a flag value to a policy.
func ParseAggregation(s string) (Aggregation, error) {
	switch s {
	case "best", "best-match":
		return BestMatch, nil
	case "mean":
		return Mean, nil
	default:
		return 0, fmt.Errorf("distance: unknown aggregation %q (want best or mean)", s)
	}
}

// Config controls one engine run.
type Config struct {
	Aggregation Aggregation
	ChunkWidth  int    // >0 pins the width; 0 plans from Budget
	Budget      uint64 // available bytes; 0 means no memory signal
	Workers     int    // chunk workers; <1 means 1
}

// Engine computes pairwise distances. Safe for one Run at a time.
type Engine struct {
	cfg Config
}

// New builds an engine.
func New(cfg Config) *Engine {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Engine{cfg: cfg}
}

// Result is the assembled matrix plus the integer accumulators it came
// from. Distances are NaN where two samples share no called site.
type Result struct {
	IDs []string
	D   *mat.SymDense

	n    int
	diff []int64
	comp []int64
}

// Len is the number of samples in the matrix.
func (r *Result) Len() int { return r.n }

// Distance returns the normalized distance between samples i and j.
func (r *Result) Distance(i, j int) float64 {
	if i == j {
		return 0
	}
	return r.D.At(i, j)
}

// DiffUnits returns the accumulated difference units between i and j.
func (r *Result) DiffUnits(i, j int) int64 {
	if i == j {
		return 0
	}
	return r.diff[pairIndex(i, j, r.n)]
}

// ComparedUnits returns the accumulated comparison units between i and j.
func (r *Result) ComparedUnits(i, j int) int64 {
	if i == j {
		return 0
	}
	return r.comp[pairIndex(i, j, r.n)]
}

func pairIndex(i, j, n int) int {
	if i > j {
		i, j = j, i
	}
	return i*(2*n-i-1)/2 + (j - i - 1)
}

type chunkJob struct {
	start, end int // index range into the column list
}

type acc struct {
	diff []int64
	comp []int64
}

// Run computes the matrix for the given samples over the given columns.
// samples[0] is conventionally the reference row; the engine treats it as
// any other sample. Chunks fan out to Config.Workers goroutines; per-pair
// integer accumulators merge at collection, so neither chunk width nor
// worker count can change the result.
func (e *Engine) Run(ctx context.Context, samples []*genome.Sample, cols []int) (*Result, error) {
	n := len(samples)
	res := &Result{n: n, IDs: make([]string, n)}
	for i, s := range samples {
		res.IDs[i] = s.ID
	}
	if n == 0 {
		return res, nil
	}

	pairs := n * (n - 1) / 2
	res.diff = make([]int64, pairs)
	res.comp = make([]int64, pairs)

	plan, err := PlanChunks(len(cols), n, e.cfg.Workers, e.cfg.ChunkWidth, e.cfg.Budget)
	if err != nil {
		return nil, err
	}

	if pairs > 0 && plan.Chunks > 0 {
		jobs := make(chan chunkJob, e.cfg.Workers*2)
		results := make(chan *acc, e.cfg.Workers)

		var wg sync.WaitGroup
		wg.Add(e.cfg.Workers)
		for w := 0; w < e.cfg.Workers; w++ {
			go func() {
				defer wg.Done()
				local := &acc{diff: make([]int64, pairs), comp: make([]int64, pairs)}
				counts := make([]genome.Counts, n*plan.Width)
				known := make([]bool, n*plan.Width)
				for {
					select {
					case <-ctx.Done():
						return
					case j, ok := <-jobs:
						if !ok {
							results <- local
							return
						}
						e.process(samples, cols[j.start:j.end], counts, known, local)
					}
				}
			}()
		}

		var cwg sync.WaitGroup
		cwg.Add(1)
		go func() {
			defer cwg.Done()
			for a := range results {
				for p := range a.diff {
					res.diff[p] += a.diff[p]
					res.comp[p] += a.comp[p]
				}
			}
		}()

	feed:
		for start := 0; start < len(cols); start += plan.Width {
			end := start + plan.Width
			if end > len(cols) {
				end = len(cols)
			}
			select {
			case <-ctx.Done():
				break feed
			case jobs <- chunkJob{start: start, end: end}:
			}
		}

		close(jobs)
		wg.Wait()
		close(results)
		cwg.Wait()

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p := pairIndex(i, j, n)
			v := math.NaN()
			if res.comp[p] > 0 {
				v = float64(res.diff[p]) / float64(res.comp[p])
			}
			d.SetSym(i, j, v)
		}
	}
	res.D = d
	return res, nil
}

// process accumulates one chunk into local. The counts/known buffers are
// worker-owned scratch laid out row-major by chunk width.
func (e *Engine) process(samples []*genome.Sample, cols []int, counts []genome.Counts, known []bool, local *acc) {
	w := len(cols)
	n := len(samples)
	for s, smp := range samples {
		base := s * w
		for idx, c := range cols {
			counts[base+idx], known[base+idx] = smp.CountsAt(c)
		}
	}
	for i := 0; i < n-1; i++ {
		pi := samples[i].Ploidy
		bi := i * w
		for j := i + 1; j < n; j++ {
			pj := samples[j].Ploidy
			bj := j * w
			var diff, comp int64
			for idx := 0; idx < w; idx++ {
				if !known[bi+idx] || !known[bj+idx] {
					continue
				}
				a, b := counts[bi+idx], counts[bj+idx]
				if e.cfg.Aggregation == Mean {
					dot := 0
					for r := 0; r < 4; r++ {
						dot += int(a[r]) * int(b[r])
					}
					comp += int64(pi * pj)
					diff += int64(pi*pj - dot)
				} else {
					m := 0
					for r := 0; r < 4; r++ {
						m += min(int(a[r]), int(b[r]))
					}
					u := min(pi, pj)
					comp += int64(u)
					diff += int64(u - m)
				}
			}
			p := pairIndex(i, j, n)
			local.diff[p] += diff
			local.comp[p] += comp
		}
	}
}
