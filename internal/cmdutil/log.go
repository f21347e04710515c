// internal/cmdutil/log.go
package cmdutil

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the run logger. Verbosity: --verbose wins over --quiet;
// quiet keeps warnings so dropped samples stay visible.
func NewLogger(dst io.Writer, quiet, verbose bool) *logrus.Logger {
	lg := logrus.New()
	lg.SetOutput(dst)
	lg.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
		DisableColors:   true,
	})
	switch {
	case verbose:
		lg.SetLevel(logrus.DebugLevel)
	case quiet:
		lg.SetLevel(logrus.WarnLevel)
	default:
		lg.SetLevel(logrus.InfoLevel)
	}
	return lg
}
