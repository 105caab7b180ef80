package infra

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerLevels(t *testing.T) {
	if got := NewLogger("development", "").GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("development level = %s, want debug", got)
	}
	if got := NewLogger("production", "").GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("production level = %s, want info", got)
	}
}

func TestNewLoggerWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger := NewLogger("production", path)
	logger.Info().Str("decade", "1980s").Msg("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"decade":"1980s"`) {
		t.Fatalf("log file missing structured field: %s", data)
	}
}
