// core/fasta/open.go
package fasta

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// gzipReadCloser closes the gzip layer before the underlying file.
type gzipReadCloser struct {
	io.Reader
	gz, file io.Closer
}

func (g *gzipReadCloser) Close() error {
	err := g.gz.Close()
	if cerr := g.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// openReader opens path as plain or gzipped FASTA; "-" means stdin.
// Gzip is detected by magic number (1F 8B) or by a .gz suffix, so
// compressed files work under any name.
func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &gzipReadCloser{Reader: gr, gz: gr, file: fh}, nil
	}
	return fh, nil
}
