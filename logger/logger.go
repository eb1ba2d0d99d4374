package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Level names accepted in LOG_LEVEL.
const (
	LevelError = "ERROR"
	LevelWarn  = "WARN"
	LevelInfo  = "INFO"
	LevelDebug = "DEBUG"
)

var std = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "omdb_proxy",
	Level:           log.ErrorLevel,
})

// SetLevel sets the level from a LOG_LEVEL value. Unknown values fall back to
// ERROR so production only reports failures.
func SetLevel(level string) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug:
		std.SetLevel(log.DebugLevel)
	case LevelInfo:
		std.SetLevel(log.InfoLevel)
	case LevelWarn:
		std.SetLevel(log.WarnLevel)
	default:
		std.SetLevel(log.ErrorLevel)
	}
}

// SetOutput redirects the process logger, e.g. to a buffer in tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Default returns the process logger for callers that want structured fields.
func Default() *log.Logger {
	return std
}

func Errorf(format string, args ...interface{}) {
	std.Errorf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

func Infof(format string, args ...interface{}) {
	std.Infof(format, args...)
}

func Debugf(format string, args ...interface{}) {
	std.Debugf(format, args...)
}
