// internal/common/ids.go
package common

import (
	"path/filepath"
	"strings"
)

// SampleName derives a sample id from a file path: basename with a
// trailing .gz and then one extension stripped. "genomes/S1.fasta.gz"
// becomes "S1"; stdin ("-") stays "-".
func SampleName(path string) string {
	if path == "-" {
		return path
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// Duplicates returns the values that appear more than once, first
// occurrence order, each listed once.
func Duplicates(ids []string) []string {
	seen := make(map[string]int, len(ids))
	var dups []string
	for _, id := range ids {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}
