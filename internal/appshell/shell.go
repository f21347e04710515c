// Package appshell is the shared main() body for the polycore binaries:
// signal-aware context, stdio wiring, exit code propagation.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs one application entry point under a SIGINT/SIGTERM context and
// exits the process with its code. A bare invocation prints usage.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == 0 {
		// Interrupted between phases; report the interruption anyway.
		code = 130
	}

	stop()
	os.Exit(code)
}
