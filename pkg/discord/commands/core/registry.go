package core

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"
	"github.com/small-frappuccino/modsheet/pkg/errutil"
	"github.com/small-frappuccino/modsheet/pkg/log"
)

// Generic replies for failures that carry no user-facing message.
const (
	msgCommandNotFound = "Comando no encontrado."
	msgCommandFailed   = "Ocurrió un error al ejecutar el comando."
)

// CommandRouter gerencia o roteamento e execução de comandos
type CommandRouter struct {
	registry        *CommandRegistry
	contextBuilder  *ContextBuilder
	responder       *Responder
	autocompleteMap map[string]AutocompleteHandler
}

// NewCommandRouter cria um novo roteador de comandos. ctx is handed to every
// command invocation.
func NewCommandRouter(ctx context.Context, session *discordgo.Session) *CommandRouter {
	responder := NewResponder(session)
	return &CommandRouter{
		registry:        NewCommandRegistry(),
		contextBuilder:  NewContextBuilder(ctx, session, responder),
		responder:       responder,
		autocompleteMap: make(map[string]AutocompleteHandler),
	}
}

// RegisterCommand registra um comando. Commands that implement
// AutocompleteHandler are also registered for autocomplete.
func (cr *CommandRouter) RegisterCommand(cmd Command) {
	cr.registry.Register(cmd)
	if h, ok := cmd.(AutocompleteHandler); ok {
		cr.RegisterAutocomplete(cmd.Name(), h)
	}
}

// RegisterAutocomplete registra um handler de autocomplete
func (cr *CommandRouter) RegisterAutocomplete(commandName string, handler AutocompleteHandler) {
	cr.autocompleteMap[commandName] = handler
}

// HandleInteraction roteia interações para os handlers apropriados
func (cr *CommandRouter) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i == nil || i.Interaction == nil {
		return
	}
	if IsAutocompleteInteraction(i) {
		cr.handleAutocomplete(i)
		return
	}

	if !IsSlashCommandInteraction(i) {
		return
	}

	cr.handleSlashCommand(i)
}

// handleSlashCommand processa comandos slash
func (cr *CommandRouter) handleSlashCommand(i *discordgo.InteractionCreate) {
	ctx := cr.contextBuilder.BuildContext(i)
	commandName := i.ApplicationCommandData().Name

	defer func() {
		if r := recover(); r != nil {
			ctx.Logger.WithFields(map[string]any{
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			}).Error("Command panicked")
			cr.fail(ctx, msgCommandFailed, true)
		}
	}()

	ctx.Logger.Debug("Processing slash command")

	// Verificar se o comando existe
	cmd, exists := cr.registry.GetCommand(commandName)
	if !exists {
		ctx.Logger.Error("Command not found")
		cr.fail(ctx, msgCommandNotFound, true)
		return
	}

	if d, ok := cmd.(DeferredCommand); ok && d.Deferred() {
		if err := errutil.HandleDiscordError("defer_response", func() error {
			return cr.responder.DeferResponse(i, false)
		}); err != nil {
			return
		}
		ctx.deferred = true
	}

	// Executar comando
	ctx.Logger.Info("Executing command")
	err := cmd.Handle(ctx)
	if err == nil {
		return
	}
	ctx.Logger.WithError(err).Error("Command execution failed")

	// Verificar se é um erro específico de comando
	var cmdErr *CommandError
	var valErr *ValidationError
	switch {
	case errors.As(err, &cmdErr):
		cr.fail(ctx, cmdErr.Message, cmdErr.Ephemeral)
	case errors.As(err, &valErr):
		cr.fail(ctx, valErr.Message, true)
	default:
		cr.fail(ctx, msgCommandFailed, true)
	}
}

// fail reports message unless the command already answered.
func (cr *CommandRouter) fail(ctx *Context, message string, ephemeral bool) {
	if ctx.responded {
		return
	}
	ctx.responded = true

	var err error
	switch {
	case ctx.deferred:
		err = cr.responder.EditResponse(ctx.Interaction, formatTextMessage(message, ResponseError))
	case ephemeral:
		err = cr.responder.Error(ctx.Interaction, message)
	default:
		err = cr.responder.Text(ctx.Interaction, formatTextMessage(message, ResponseError))
	}
	if err != nil {
		ctx.Logger.WithError(err).Warn("Failed to send error reply")
	}
}

// handleAutocomplete processa interações de autocomplete
func (cr *CommandRouter) handleAutocomplete(i *discordgo.InteractionCreate) {
	ctx := cr.contextBuilder.BuildContext(i)
	commandName := i.ApplicationCommandData().Name

	choices := cr.autocompleteChoices(ctx, commandName)
	if err := cr.responder.Autocomplete(i, choices); err != nil {
		ctx.Logger.WithError(err).Warn("Failed to send autocomplete choices")
	}
}

func (cr *CommandRouter) autocompleteChoices(ctx *Context, commandName string) (choices []*discordgo.ApplicationCommandOptionChoice) {
	defer func() {
		if r := recover(); r != nil {
			ctx.Logger.WithField("panic", fmt.Sprint(r)).Error("Autocomplete handler panicked")
			choices = nil
		}
	}()

	// Buscar handler de autocomplete
	handler, exists := cr.autocompleteMap[commandName]
	if !exists {
		return nil
	}

	// Encontrar a opção com foco
	focusedOpt, hasFocus := HasFocusedOption(ctx.Interaction.ApplicationCommandData().Options)
	if !hasFocus {
		return nil
	}

	// Executar autocomplete
	found, err := handler.HandleAutocomplete(ctx, focusedOpt.Name)
	if err != nil {
		ctx.Logger.WithError(err).Error("Autocomplete handler failed")
		return nil
	}
	return found
}

// CommandManager gerencia o ciclo de vida dos comandos no Discord
type CommandManager struct {
	session *discordgo.Session
	router  *CommandRouter
	logger  *log.Entry
}

// NewCommandManager cria um novo gerenciador de comandos
func NewCommandManager(ctx context.Context, session *discordgo.Session) *CommandManager {
	return &CommandManager{
		session: session,
		router:  NewCommandRouter(ctx, session),
		logger:  log.DiscordLogger().WithField("component", "command_manager"),
	}
}

// GetRouter retorna o roteador de comandos
func (cm *CommandManager) GetRouter() *CommandRouter {
	return cm.router
}

// SetupCommands registers the interaction handler and synchronizes the
// application commands with Discord. An empty guildID syncs global commands.
func (cm *CommandManager) SetupCommands(guildID string) error {
	cm.session.AddHandler(cm.router.HandleInteraction)
	return cm.SyncCommands(guildID)
}

// SyncCommands creates, updates and deletes application commands so Discord
// matches the registry.
func (cm *CommandManager) SyncCommands(guildID string) error {
	if cm.session.State == nil || cm.session.State.User == nil {
		return fmt.Errorf("sync commands: session user not available")
	}
	appID := cm.session.State.User.ID

	// Obter comandos já registrados no Discord
	var registered []*discordgo.ApplicationCommand
	if err := errutil.HandleDiscordError("list_commands", func() error {
		var err error
		registered, err = cm.session.ApplicationCommands(appID, guildID)
		return err
	}); err != nil {
		return fmt.Errorf("failed to fetch registered commands: %w", err)
	}

	// Criar mapa de comandos registrados
	regByName := make(map[string]*discordgo.ApplicationCommand, len(registered))
	for _, rc := range registered {
		regByName[rc.Name] = rc
	}

	codeCommands := cm.router.registry.GetAllCommands()

	// Criar/Atualizar comandos conforme necessário
	created, updated, unchanged := 0, 0, 0
	for name, cmd := range codeCommands {
		desired := &discordgo.ApplicationCommand{
			Name:        cmd.Name(),
			Description: cmd.Description(),
			Options:     cmd.Options(),
		}

		if existing, ok := regByName[name]; ok {
			// Comando já existe, verificar se precisa atualizar
			if CompareCommands(existing, desired) {
				cm.logger.WithField("command", name).Debug("Command unchanged, skipping")
				unchanged++
				continue
			}

			if _, err := cm.session.ApplicationCommandEdit(appID, guildID, existing.ID, desired); err != nil {
				return fmt.Errorf("error updating command '%s': %w", name, err)
			}
			cm.logger.WithField("command", name).Info("Command updated")
			updated++
		} else {
			if _, err := cm.session.ApplicationCommandCreate(appID, guildID, desired); err != nil {
				return fmt.Errorf("error creating command '%s': %w", name, err)
			}
			cm.logger.WithField("command", name).Info("Command created")
			created++
		}
	}

	// Remover comandos órfãos (existem no Discord mas não no código)
	deleted := 0
	for _, rc := range registered {
		if _, exists := codeCommands[rc.Name]; !exists {
			if err := cm.session.ApplicationCommandDelete(appID, guildID, rc.ID); err != nil {
				cm.logger.WithFields(map[string]any{
					"command": rc.Name,
					"error":   err,
				}).Warn("Error removing orphan command")
				continue
			}
			cm.logger.WithField("command", rc.Name).Info("Orphan command removed")
			deleted++
		}
	}

	cm.logger.WithFields(map[string]any{
		"created":   created,
		"updated":   updated,
		"deleted":   deleted,
		"unchanged": unchanged,
		"total":     len(codeCommands),
		"guildID":   guildID,
		"mode":      "incremental",
	}).Info("Command synchronization completed")

	return nil
}
