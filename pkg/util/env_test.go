package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvFallbacksUsesHomeFile(t *testing.T) {
	tmp := t.TempDir()
	fakeHome := filepath.Join(tmp, "home")
	if err := os.MkdirAll(filepath.Join(fakeHome, ".local", "bin"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	envPath := filepath.Join(fakeHome, ".local", "bin", ".env")
	if err := os.WriteFile(envPath, []byte("MODSHEET_TEST_TOKEN=fromfile"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}

	t.Setenv("HOME", fakeHome)
	t.Setenv("MODSHEET_TEST_TOKEN", "")
	_ = os.Unsetenv("MODSHEET_TEST_TOKEN")

	files := EnvFallbackFiles()
	if files[len(files)-1] != envPath {
		t.Fatalf("expected home fallback %s, got %v", envPath, files)
	}

	loaded, err := LoadEnvFallbacks(filepath.Join(tmp, "missing.env"), envPath)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(loaded) != 1 || loaded[0] != envPath {
		t.Fatalf("unexpected loaded files: %v", loaded)
	}
	if got := os.Getenv("MODSHEET_TEST_TOKEN"); got != "fromfile" {
		t.Fatalf("expected value from file, got %q", got)
	}

	// When env already set, file should not override.
	t.Setenv("MODSHEET_TEST_TOKEN", "envwins")
	if _, err := LoadEnvFallbacks(envPath); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := os.Getenv("MODSHEET_TEST_TOKEN"); got != "envwins" {
		t.Fatalf("expected existing env to win, got %q", got)
	}
}

func TestLoadEnvFallbacksFirstFileWins(t *testing.T) {
	tmp := t.TempDir()
	first := filepath.Join(tmp, "first.env")
	second := filepath.Join(tmp, "second.env")
	if err := os.WriteFile(first, []byte("MODSHEET_TEST_ORDER=first"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(second, []byte("MODSHEET_TEST_ORDER=second"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("MODSHEET_TEST_ORDER", "")
	_ = os.Unsetenv("MODSHEET_TEST_ORDER")

	if _, err := LoadEnvFallbacks(first, second); err != nil {
		t.Fatalf("LoadEnvFallbacks: %v", err)
	}
	if got := os.Getenv("MODSHEET_TEST_ORDER"); got != "first" {
		t.Fatalf("expected first file to win, got %q", got)
	}
}
