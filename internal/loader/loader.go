// internal/loader/loader.go

// Package loader reads reference and sample FASTA files into aligned
// genome rows, enforcing the structural invariants (uniform length,
// unique ids) before any analysis starts.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"polycore-core/fasta"
	"polycore-core/genome"

	"polycore/internal/common"
)

// ErrLengthMismatch flags a row whose aligned length differs from the
// reference. The whole run is refused; a partial alignment is not salvable.
var ErrLengthMismatch = errors.New("alignment length mismatch")

// ErrDuplicateID flags two genomes resolving to the same id.
var ErrDuplicateID = errors.New("duplicate sample id")

// Input is a fully loaded alignment: one reference row plus the sample
// rows, all the same length, ids unique.
type Input struct {
	Ref     *genome.Sample
	Samples []*genome.Sample
}

// Load reads the reference and every sample file. Each file is one genome:
// multi-record files are concatenated in record order, rows are uppercased.
// Sample ids come from file basenames; the reference id is its first record
// id. Files are read by up to workers goroutines, results keep input order.
func Load(ctx context.Context, lg *logrus.Logger, refPath string, samplePaths []string, ploidy, workers int) (*Input, error) {
	ref, err := loadReference(ctx, refPath)
	if err != nil {
		return nil, err
	}
	lg.Debugf("loaded reference %s: %d bp", ref.ID, ref.Len())

	if workers < 1 {
		workers = 1
	}
	samples := make([]*genome.Sample, len(samplePaths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range samplePaths {
		i, path := i, path
		g.Go(func() error {
			s, err := loadSample(gctx, path, ploidy)
			if err != nil {
				return err
			}
			samples[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, s := range samples {
		if s.Len() != ref.Len() {
			return nil, fmt.Errorf("%w: %s is %d bp, reference is %d bp",
				ErrLengthMismatch, samplePaths[i], s.Len(), ref.Len())
		}
		lg.Debugf("loaded %s: %d bp, ploidy %d (%s)", s.ID, s.Len(), s.Ploidy, s.Source)
	}

	ids := make([]string, 0, len(samples)+1)
	ids = append(ids, ref.ID)
	for _, s := range samples {
		ids = append(ids, s.ID)
	}
	if dups := common.Duplicates(ids); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, dups[0])
	}
	return &Input{Ref: ref, Samples: samples}, nil
}

// LoadAlignment reads one multi-FASTA where every record is already an
// aligned row. With withRef the first record becomes the reference
// (haploid, ambiguity decodes as missing); without it every record is a
// sample and ploidy applies to all of them.
func LoadAlignment(ctx context.Context, path string, ploidy int, withRef bool) (*Input, error) {
	recs, err := fasta.ReadAllCtx(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read alignment %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("read alignment %s: no records", path)
	}

	in := &Input{}
	ids := make([]string, 0, len(recs))
	for i, rec := range recs {
		id := rec.ID
		if id == "" {
			id = fmt.Sprintf("row%d", i+1)
		}
		row := bytes.ToUpper(rec.Seq)
		if err := genome.ValidateRow(row); err != nil {
			return nil, fmt.Errorf("sample %s (%s): %w", id, path, err)
		}
		if len(row) != len(recs[0].Seq) {
			return nil, fmt.Errorf("%w: record %s is %d bp, %s is %d bp",
				ErrLengthMismatch, id, len(row), ids[0], len(recs[0].Seq))
		}
		if withRef && i == 0 {
			in.Ref = genome.NewReference(id, row)
		} else {
			s, err := genome.NewSample(id, row, ploidy)
			if err != nil {
				return nil, err
			}
			in.Samples = append(in.Samples, s)
		}
		ids = append(ids, id)
	}
	if dups := common.Duplicates(ids); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, dups[0])
	}
	return in, nil
}

// loadReference reads the reference FASTA. Its id is the first record id so
// reports can name the actual chromosome or assembly.
func loadReference(ctx context.Context, path string) (*genome.Sample, error) {
	id, row, err := readGenome(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read reference %s: %w", path, err)
	}
	if id == "" {
		id = "Reference"
	}
	if err := genome.ValidateRow(row); err != nil {
		return nil, fmt.Errorf("reference %s: %w", path, err)
	}
	return genome.NewReference(id, row), nil
}

// loadSample reads one sample file into a genome row named after the file.
func loadSample(ctx context.Context, path string, ploidy int) (*genome.Sample, error) {
	_, row, err := readGenome(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read sample %s: %w", path, err)
	}
	id := common.SampleName(path)
	if err := genome.ValidateRow(row); err != nil {
		return nil, fmt.Errorf("sample %s (%s): %w", id, path, err)
	}
	return genome.NewSample(id, row, ploidy)
}

// readGenome reads one file into a single uppercased row, concatenating
// records in order. Returns the first record's id.
func readGenome(ctx context.Context, path string) (string, []byte, error) {
	recs, err := fasta.ReadAllCtx(ctx, path)
	if err != nil {
		return "", nil, err
	}
	var firstID string
	if len(recs) > 0 {
		firstID = recs[0].ID
	}
	var row []byte
	for _, rec := range recs {
		row = append(row, rec.Seq...)
	}
	return firstID, bytes.ToUpper(row), nil
}
