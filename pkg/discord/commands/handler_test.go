package commands

import (
	"context"
	"net/http"
	"testing"

	"github.com/small-frappuccino/modsheet/pkg/discord/commands/core/coretest"
	"github.com/small-frappuccino/modsheet/pkg/modsheet"
	"github.com/small-frappuccino/modsheet/pkg/sheets/sheetstest"
)

func TestSetupCommandsCreatesModCommands(t *testing.T) {
	session, rec := coretest.NewSession(t)
	handler := NewCommandHandler(session, modsheet.NewService(sheetstest.New(), nil), "guild")

	if err := handler.SetupCommands(context.Background()); err != nil {
		t.Fatalf("SetupCommands: %v", err)
	}

	if got := len(rec.Calls(http.MethodPost, "/applications/app/guilds/guild/commands")); got != 9 {
		t.Fatalf("expected 9 commands created, got %d", got)
	}
	if handler.GetCommandManager() == nil {
		t.Fatalf("expected command manager to be set")
	}
}
