// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"polycore/internal/output"
	"polycore/internal/pretty"
	"polycore/pkg/api"
)

// ReportFunc renders one stdout report format.
type ReportFunc func(w io.Writer, rep api.ReportV1) error

// Report format registry (format -> handler); registration is last-wins.
var reportWriters = map[string]ReportFunc{}

// RegisterReport installs or replaces a format handler.
func RegisterReport(format string, fn ReportFunc) { reportWriters[format] = fn }

// WriteReport dispatches the report to the registered format handler.
func WriteReport(format string, w io.Writer, rep api.ReportV1) error {
	fn, ok := reportWriters[format]
	if !ok {
		return fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	return fn(w, rep)
}

func init() {
	RegisterReport("text", func(w io.Writer, rep api.ReportV1) error {
		_, err := io.WriteString(w, pretty.RenderReport(rep))
		return err
	})
	RegisterReport("json", output.WriteReportJSON)
	RegisterReport("csv", output.WriteSummaryCSV)
}
