// internal/cmdutil/run.go
package cmdutil

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Phase runs one pipeline stage and logs its wall time. Errors pass
// through untouched so sentinel matching keeps working upstream.
func Phase(lg *logrus.Logger, name string, fn func() error) error {
	start := time.Now()
	lg.Debugf("%s...", name)
	if err := fn(); err != nil {
		return err
	}
	lg.Debugf("%s done in %s", name, time.Since(start).Round(time.Millisecond))
	return nil
}
