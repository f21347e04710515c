// internal/output/alignment.go
package output

import (
	"fmt"
	"io"

	"polycore-core/fasta"
)

// WriteAlignment writes one FASTA record per name, rows parallel to names.
// Sequences stay on single lines so downstream tools can index columns.
func WriteAlignment(w io.Writer, names []string, rows [][]byte) error {
	if len(names) != len(rows) {
		return fmt.Errorf("output: %d names but %d rows", len(names), len(rows))
	}
	for i, name := range names {
		if err := fasta.WriteRecord(w, name, rows[i]); err != nil {
			return err
		}
	}
	return nil
}
