package core

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/small-frappuccino/modsheet/pkg/log"
)

// ContextBuilder creates contexts for command execution
type ContextBuilder struct {
	session   *discordgo.Session
	responder *Responder
	base      context.Context
}

// NewContextBuilder creates a new context builder
func NewContextBuilder(base context.Context, session *discordgo.Session, responder *Responder) *ContextBuilder {
	if base == nil {
		base = context.Background()
	}
	return &ContextBuilder{session: session, responder: responder, base: base}
}

// BuildContext creates a complete context for command execution. Every context
// gets a fresh request ID that is attached to its logger.
func (cb *ContextBuilder) BuildContext(i *discordgo.InteractionCreate) *Context {
	userID := extractUserID(i)
	requestID := uuid.NewString()

	ctx := &Context{
		Session:     cb.session,
		Interaction: i,
		GuildID:     i.GuildID,
		UserID:      userID,
		RequestID:   requestID,
		ctx:         cb.base,
		responder:   cb.responder,
	}
	ctx.Logger = log.DiscordLogger().WithFields(CreateLogFields(ctx, nil))
	return ctx
}

// extractUserID extracts the user ID from the interaction
func extractUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	} else if i.User != nil {
		return i.User.ID
	}
	return ""
}

// GetCommandOptions returns the options of the invoked command
func GetCommandOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	if i == nil || i.Interaction == nil {
		return nil
	}
	if !IsSlashCommandInteraction(i) && !IsAutocompleteInteraction(i) {
		return nil
	}
	return i.ApplicationCommandData().Options
}

// HasFocusedOption checks if there is a focused option (for autocomplete)
func HasFocusedOption(options []*discordgo.ApplicationCommandInteractionDataOption) (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	for _, opt := range options {
		if opt.Focused {
			return opt, true
		}
		// Checks recursively in subcommands
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand && len(opt.Options) > 0 {
			if focused, found := HasFocusedOption(opt.Options); found {
				return focused, true
			}
		}
	}
	return nil, false
}

// IsAutocompleteInteraction checks if the interaction is for autocomplete
func IsAutocompleteInteraction(i *discordgo.InteractionCreate) bool {
	return i.Type == discordgo.InteractionApplicationCommandAutocomplete
}

// IsSlashCommandInteraction checks if the interaction is a slash command
func IsSlashCommandInteraction(i *discordgo.InteractionCreate) bool {
	return i.Type == discordgo.InteractionApplicationCommand
}

// CreateLogFields creates standardized log fields
func CreateLogFields(ctx *Context, additionalFields map[string]any) map[string]any {
	fields := map[string]any{
		"guildID":   ctx.GuildID,
		"userID":    ctx.UserID,
		"requestID": ctx.RequestID,
	}
	if IsSlashCommandInteraction(ctx.Interaction) || IsAutocompleteInteraction(ctx.Interaction) {
		fields["command"] = ctx.Interaction.ApplicationCommandData().Name
	}

	for k, v := range additionalFields {
		fields[k] = v
	}
	return fields
}
