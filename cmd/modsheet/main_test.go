package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/small-frappuccino/modsheet/pkg/app"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MODSHEET_BACKEND", "sqlite")
	t.Setenv("MODSHEET_SQLITE_PATH", filepath.Join(dir, "mods.db"))
	t.Setenv("MODSHEET_LOG_DIR", filepath.Join(dir, "logs"))
	t.Setenv("DISCORD_NEXUS_API_KEY", "")
	t.Setenv("DISCORD_TOKEN", "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if want := "modsheet " + app.Version; strings.TrimSpace(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestQueryHelp(t *testing.T) {
	out, err := execute(t, "query", "help")
	if err != nil {
		t.Fatalf("query help: %v", err)
	}
	if !strings.Contains(out, "listmods") {
		t.Fatalf("help text missing listmods: %q", out)
	}
}

func TestQueryUpdateFieldRejectsBadRow(t *testing.T) {
	out, err := execute(t, "query", "updatefield", "1", "Nombre", "x")
	if !errors.Is(err, errFailedReply) {
		t.Fatalf("expected errFailedReply, got %v", err)
	}
	if !strings.Contains(out, "Fila inválida") {
		t.Fatalf("unexpected reply %q", out)
	}
}

func TestQueryAddModWithoutAPIKey(t *testing.T) {
	out, err := execute(t, "query", "addmod", "42")
	if !errors.Is(err, errFailedReply) {
		t.Fatalf("expected errFailedReply, got %v", err)
	}
	if !strings.Contains(out, "API Key") {
		t.Fatalf("unexpected reply %q", out)
	}
}

func TestQueryRejectsNonNumericRow(t *testing.T) {
	if _, err := execute(t, "query", "updatefield", "abc", "Nombre", "x"); err == nil || errors.Is(err, errFailedReply) {
		t.Fatalf("expected a parse error, got %v", err)
	}
}

func TestServeWithoutTokenSucceeds(t *testing.T) {
	if _, err := execute(t, "serve"); err != nil {
		t.Fatalf("serve without token: %v", err)
	}
}
