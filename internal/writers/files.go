// internal/writers/files.go
package writers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FileSpec binds an output file name to the function that renders it.
type FileSpec struct {
	Name  string
	Write func(io.Writer) error
}

// WriteFiles creates dir if needed and writes every spec concurrently,
// one goroutine per file. The first error cancels nothing already in
// flight but wins the return value.
func WriteFiles(ctx context.Context, lg *logrus.Logger, dir string, specs []FileSpec) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("out-dir %s: %w", dir, err)
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, sp := range specs {
		sp := sp
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			path := filepath.Join(dir, sp.Name)
			if err := writeFile(path, sp.Write); err != nil {
				return fmt.Errorf("write %s: %w", sp.Name, err)
			}
			lg.Infof("saved file -> %s", path)
			return nil
		})
	}
	return g.Wait()
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// IsBrokenPipe reports whether an error is a broken or closed pipe.
// Downstream consumers (like `head`) closing stdout early is success,
// not failure.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
