package log

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLoggerWritesCategoryFiles(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	if err := SetupLogger(Options{Dir: dir, Level: slog.LevelDebug, Console: &console}); err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	t.Cleanup(func() {
		mu.Lock()
		l := GlobalLogger
		GlobalLogger = nil
		mu.Unlock()
		_ = l.Close()
	})

	SheetsLogger().WithField("row", 7).Info("cell written")
	CatalogLogger().WithField("mod_id", 42).Info("mod fetched")
	ErrorLogger().ErrorWithErr("write failed", errors.New("quota"))

	data, err := os.ReadFile(filepath.Join(dir, "sheets.log"))
	if err != nil {
		t.Fatalf("read sheets.log: %v", err)
	}
	if !strings.Contains(string(data), "cell written") || !strings.Contains(string(data), "row=7") {
		t.Fatalf("unexpected sheets.log: %q", data)
	}

	data, err = os.ReadFile(filepath.Join(dir, "catalog.log"))
	if err != nil {
		t.Fatalf("read catalog.log: %v", err)
	}
	if !strings.Contains(string(data), "mod_id=42") || strings.Contains(string(data), "cell written") {
		t.Fatalf("unexpected catalog.log: %q", data)
	}

	data, err = os.ReadFile(filepath.Join(dir, "error.log"))
	if err != nil {
		t.Fatalf("read error.log: %v", err)
	}
	if !strings.Contains(string(data), "error=quota") {
		t.Fatalf("unexpected error.log: %q", data)
	}
	if !strings.Contains(console.String(), "category=sheets") {
		t.Fatalf("expected console copy, got %q", console.String())
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var console bytes.Buffer
	l, err := New(Options{Level: slog.LevelInfo, Console: &console})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Category(Application).Debug("hidden")
	l.Category(Application).Info("shown")
	if strings.Contains(console.String(), "hidden") || !strings.Contains(console.String(), "shown") {
		t.Fatalf("unexpected output: %q", console.String())
	}
}

func TestNilLoggerFallsBack(t *testing.T) {
	var l *Logger
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("nil logger panicked: %v", r)
		}
	}()
	l.Category(DiscordEvents).WithError(nil).Info("before setup")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
