// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"polycore/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections (usage lines, threshold blocks, etc.).
func UsageCommon(fs *flag.FlagSet, name, oneLiner string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – %s\n\n", name, oneLiner)
		fmt.Fprintln(out, "License: MIT")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -s, --samples file          Sample FASTA file or glob (repeatable) or '-' for STDIN")
		fmt.Fprintf(out, "  -p, --ploidy int            Genome copies per sample (0=auto-detect) [%s]\n", def("ploidy"))

		fmt.Fprintln(out, "\nDistance:")
		fmt.Fprintf(out, "      --dist-agg string       Copy-pair aggregation: best | mean [%s]\n", def("dist-agg"))
		fmt.Fprintf(out, "      --chunk-width int       Chunk width in columns (0=auto from memory) [%s]\n", def("chunk-width"))
		fmt.Fprintf(out, "      --mem-mb int            Memory budget in MiB (0=probe) [%s]\n", def("mem-mb"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int           Worker threads (0=all CPUs) [%s]\n", def("threads"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --out-dir dir           Directory for output files [%s]\n", def("out-dir"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Log warnings only [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      --verbose               Log per-phase debug detail [%s]\n", def("verbose"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
