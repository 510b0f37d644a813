package log

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewDiagnostics builds the operator-facing logger used for warnings and
// server lifecycle messages. It is separate from the battle event log.
//
// An empty level falls back to LOG_LEVEL and then to "info". Format "json"
// selects the JSON formatter, anything else the text formatter.
func NewDiagnostics(w io.Writer, level string, format string) *logrus.Logger {
	l := logrus.New()

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if w == nil {
		w = os.Stderr
	}
	l.SetOutput(w)
	return l
}

// Discard returns a diagnostics logger that drops everything. Tests use it.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
