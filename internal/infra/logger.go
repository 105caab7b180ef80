package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 50
	logFileMaxBackups = 5
	logFileMaxAgeDays = 14
)

// NewLogger constructs a zerolog.Logger with sane defaults for the service.
// When logFile is non-empty, JSON lines are additionally written to a
// size-rotated file.
func NewLogger(appEnv, logFile string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	var console io.Writer = os.Stdout
	if appEnv == "development" {
		console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	out := console
	if logFile != "" {
		out = zerolog.MultiLevelWriter(console, newRotatingFile(logFile))
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func newRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
	}
}

// Logger aliases the zerolog.Logger so callers outside the infra package can
// depend on the logging contract without importing the third-party module
// directly.
type Logger = zerolog.Logger

// NopLogger returns a logger that discards everything.
func NopLogger() Logger {
	return zerolog.Nop()
}
