// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one parsed FASTA record. Seq holds the sequence exactly as
// read, whitespace stripped, case preserved.
type Record struct {
	ID  string
	Seq []byte
}

// StreamRecordsCtx parses FASTA from r and emits whole records in file
// order. Alignment rows are consumed as units, so there is no chunking
// here; cancellation is still checked between lines. emit may return a
// non-nil error to stop early.
func StreamRecordsCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		started bool
		id      string
		seq     = make([]byte, 0, 1<<20)
	)

	flush := func() error {
		if !started {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			started = true
			id = parseHeaderID(line[1:])
			seq = seq[:0]
			continue
		}
		if !started {
			return fmt.Errorf("fasta: sequence data before first header")
		}
		seq = append(seq, line...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ReadAllCtx opens path (gzip and "-" for stdin accepted) and returns
// every record in file order.
func ReadAllCtx(ctx context.Context, path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var recs []Record
	err = StreamRecordsCtx(ctx, rc, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// ReadAll is ReadAllCtx with a background context.
func ReadAll(path string) ([]Record, error) {
	return ReadAllCtx(context.Background(), path)
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
