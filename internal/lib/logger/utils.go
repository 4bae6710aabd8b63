package logger

import (
	"io"
	"log"
	"log/slog"
	"strings"

	"kutuphanem/proj/internal/lib/logger/handlers/slogpretty"
)

func SetupLogger(out io.Writer, debug bool) *slog.Logger {
	var handler slog.Handler
	if debug {
		handler = slogpretty.NewPrettyHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(handler)
}

type out struct {
	stdLog *slog.Logger
}

func (l out) Write(p []byte) (n int, err error) {
	l.stdLog.Error(strings.TrimSpace(string(p)))
	return len(p), nil
}

// LogAdapter routes a standard library logger (http.Server.ErrorLog) to slog.
func LogAdapter(logger *slog.Logger) *log.Logger {
	return log.New(&out{logger}, "", 0)
}
