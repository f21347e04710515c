// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"polycore/pkg/api"
)

// WriteReportJSON writes the full v1 report payload (pretty-indented).
func WriteReportJSON(w io.Writer, rep api.ReportV1) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
