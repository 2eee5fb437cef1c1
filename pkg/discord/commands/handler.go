package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/small-frappuccino/modsheet/pkg/discord/commands/core"
	"github.com/small-frappuccino/modsheet/pkg/discord/commands/mods"
	"github.com/small-frappuccino/modsheet/pkg/log"
	"github.com/small-frappuccino/modsheet/pkg/modsheet"
)

// CommandHandler coordinates the bot commands
type CommandHandler struct {
	session        *discordgo.Session
	service        *modsheet.Service
	guildID        string
	commandManager *core.CommandManager
}

// NewCommandHandler creates a new CommandHandler instance. An empty guildID
// registers the commands globally.
func NewCommandHandler(session *discordgo.Session, service *modsheet.Service, guildID string) *CommandHandler {
	return &CommandHandler{
		session: session,
		service: service,
		guildID: guildID,
	}
}

// SetupCommands registers the mod commands and syncs them with Discord
func (ch *CommandHandler) SetupCommands(ctx context.Context) error {
	log.ApplicationLogger().Info("Setting up bot commands...")

	ch.commandManager = core.NewCommandManager(ctx, ch.session)
	mods.RegisterModCommands(ch.commandManager.GetRouter(), ch.service)

	if err := ch.commandManager.SetupCommands(ch.guildID); err != nil {
		return fmt.Errorf("failed to setup commands: %w", err)
	}

	log.ApplicationLogger().WithField("guildID", ch.guildID).Info("Bot commands setup completed successfully")
	return nil
}

// GetCommandManager returns the command manager (for tests or extensions)
func (ch *CommandHandler) GetCommandManager() *core.CommandManager {
	return ch.commandManager
}
