package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes info records to w. Verbose loggers add debug records
// and millisecond timestamps.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{Prefix: "ftheur", Level: log.InfoLevel})
	if verbose {
		l.SetLevel(log.DebugLevel)
		l.SetReportTimestamp(true)
		l.SetTimeFormat(time.StampMilli)
	}

	return l
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default() for commands run without
// the root's pre-run hook, as in tests.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}

	return log.Default()
}
