// core/fasta/reader_test.go
package fasta

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const plain = `>seq1 first genome
ACGT
acgt
>seq2
NNnn
`

// writeGz creates a gzipped FASTA file with provided data, returns the file path.
func writeGz(t *testing.T, data string) string {
	t.Helper()
	tmpdir := t.TempDir()
	path := filepath.Join(tmpdir, fmt.Sprintf("test-%d.fa.gz", time.Now().UnixNano()))
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestReadAllPlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.fa")
	if err := os.WriteFile(path, []byte(plain), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	recs, err := ReadAll(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != "seq1" {
		t.Errorf("header id should stop at whitespace, got %q", recs[0].ID)
	}
	if got := string(recs[0].Seq); got != "ACGTacgt" {
		t.Errorf("multi-line sequence joined wrong: %q", got)
	}
	if got := string(recs[1].Seq); got != "NNnn" {
		t.Errorf("case must be preserved at this layer: %q", got)
	}
}

func TestReadAllGzip(t *testing.T) {
	recs, err := ReadAll(writeGz(t, plain))
	if err != nil {
		t.Fatalf("read gz: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "seq1" || recs[1].ID != "seq2" {
		t.Fatalf("gzip parse failed, recs=%v", recs)
	}
}

func TestReadAllGzipWithoutSuffix(t *testing.T) {
	// Magic-number detection must carry files renamed away from .gz.
	src := writeGz(t, plain)
	dst := strings.TrimSuffix(src, ".gz")
	if err := os.Rename(src, dst); err != nil {
		t.Fatalf("rename: %v", err)
	}
	recs, err := ReadAll(dst)
	if err != nil {
		t.Fatalf("read renamed gz: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
}

func TestReadAllStdin(t *testing.T) {
	// Fake stdin by swapping os.Stdin
	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()

	recs, err := ReadAll("-")
	if err != nil {
		t.Fatalf("read stdin: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records from stdin, got %d", len(recs))
	}
}

func TestStreamRecordsCRLF(t *testing.T) {
	in := ">a\r\nAC\r\nGT\r\n>b\r\nTT\r\n"
	var ids []string
	err := StreamRecordsCtx(context.Background(), strings.NewReader(in), func(r Record) error {
		ids = append(ids, r.ID+":"+string(r.Seq))
		return nil
	})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a:ACGT" || ids[1] != "b:TT" {
		t.Fatalf("CRLF handling broke parsing: %v", ids)
	}
}

func TestStreamRecordsHeaderOnly(t *testing.T) {
	in := ">empty\n>next\nAC\n"
	var recs []Record
	err := StreamRecordsCtx(context.Background(), strings.NewReader(in), func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if len(recs) != 2 || len(recs[0].Seq) != 0 || string(recs[1].Seq) != "AC" {
		t.Fatalf("header-only record mishandled: %v", recs)
	}
}

func TestStreamRecordsLeadingJunk(t *testing.T) {
	err := StreamRecordsCtx(context.Background(), strings.NewReader("ACGT\n>a\nAC\n"), func(Record) error {
		return nil
	})
	if err == nil {
		t.Fatal("sequence data before the first header must fail")
	}
}

func TestStreamRecordsEmitError(t *testing.T) {
	want := fmt.Errorf("stop")
	err := StreamRecordsCtx(context.Background(), strings.NewReader(plain), func(Record) error {
		return want
	})
	if err != want {
		t.Fatalf("emit error not propagated, got %v", err)
	}
}
