package dirchecksums

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestPublicAPI tests the public API functions work correctly
func TestPublicAPI(t *testing.T) {
	t.Run("DebugFunctions", func(t *testing.T) {
		InitDebugFlags("walk,compare:false")
		defer SetDebugFlags("")

		if !GetDebugEnabled("walk") {
			t.Errorf("Expected walk debug to be enabled")
		}
		if GetDebugEnabled("compare") {
			t.Errorf("Expected compare debug to be disabled")
		}
		if GetDebugEnabled("hash") {
			t.Errorf("Expected hash debug to be unset")
		}

		// Should not crash
		LogDebugFlags()
	})

	t.Run("VerboseFunctions", func(t *testing.T) {
		SetVerboseLevel(2)
		defer SetVerboseLevel(0)

		if GetVerbose() != 2 {
			t.Errorf("Expected verbose level 2, got %d", GetVerbose())
		}
		if LogLevel().Level() != slog.LevelDebug {
			t.Errorf("Expected debug log level, got %v", LogLevel().Level())
		}
	})

	t.Run("LoggerRouting", func(t *testing.T) {
		var buf bytes.Buffer
		prev := Logger()
		SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LogLevel()})))
		defer SetLogger(prev)

		SetVerboseLevel(1)
		defer SetVerboseLevel(0)

		VerboseLog(1, "Loaded %d records\n", 3)
		VerboseLog(2, "hidden")

		out := buf.String()
		if !strings.Contains(out, "Loaded 3 records") {
			t.Errorf("Expected info record, got %q", out)
		}
		if strings.Contains(out, "hidden") {
			t.Errorf("Level 2 record should be filtered at level 1, got %q", out)
		}
	})
}
