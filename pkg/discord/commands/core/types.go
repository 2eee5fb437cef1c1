package core

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/small-frappuccino/modsheet/pkg/log"
)

// Command representa um comando slash
type Command interface {
	Name() string
	Description() string
	Options() []*discordgo.ApplicationCommandOption
	Handle(ctx *Context) error
}

// AutocompleteHandler é implementado por comandos com opções autocompletáveis
type AutocompleteHandler interface {
	HandleAutocomplete(ctx *Context, focusedOption string) ([]*discordgo.ApplicationCommandOptionChoice, error)
}

// DeferredCommand is implemented by commands that may take longer than the
// interaction deadline. The router acknowledges them before Handle runs and
// Respond edits the deferred reply.
type DeferredCommand interface {
	Deferred() bool
}

// Context fornece contexto unificado para execução de comandos
type Context struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Logger      *log.Entry
	GuildID     string
	UserID      string
	RequestID   string

	ctx       context.Context
	responder *Responder
	deferred  bool
	responded bool
}

// Context returns the context carried by the interaction.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Options returns an extractor over the invoked command's options.
func (c *Context) Options() *OptionExtractor {
	return NewOptionExtractor(GetCommandOptions(c.Interaction))
}

// Respond sends content as the reply to the interaction, editing the deferred
// acknowledgement when there is one.
func (c *Context) Respond(content string, ephemeral bool) error {
	c.responded = true
	if c.deferred {
		return c.responder.EditResponse(c.Interaction, content)
	}
	if ephemeral {
		return c.responder.Ephemeral(c.Interaction, content)
	}
	return c.responder.Text(c.Interaction, content)
}

// CommandRegistry gerencia registro e execução de comandos
type CommandRegistry struct {
	commands map[string]Command
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{commands: make(map[string]Command)}
}

// Register registra um comando no registry
func (r *CommandRegistry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// GetCommand retorna um comando pelo nome
func (r *CommandRegistry) GetCommand(name string) (Command, bool) {
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetAllCommands retorna todos os comandos registrados
func (r *CommandRegistry) GetAllCommands() map[string]Command {
	return r.commands
}

// CommandError representa erros específicos de comandos
type CommandError struct {
	Message   string
	Ephemeral bool
}

func (e *CommandError) Error() string {
	return e.Message
}

// NewCommandError cria um novo erro de comando
func NewCommandError(message string, ephemeral bool) *CommandError {
	return &CommandError{
		Message:   message,
		Ephemeral: ephemeral,
	}
}

// ValidationError representa erros de validação
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError cria um novo erro de validação
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
