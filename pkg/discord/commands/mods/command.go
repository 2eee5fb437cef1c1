package mods

import (
	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modsheet/pkg/discord/commands/core"
	"github.com/small-frappuccino/modsheet/pkg/modsheet"
)

// completer returns the suggestions for the focused option given what the
// user typed so far.
type completer func(ctx *core.Context, prefix string) ([]string, error)

func static(fn func(prefix string) []string) completer {
	return func(_ *core.Context, prefix string) ([]string, error) {
		return fn(prefix), nil
	}
}

// modCommand is a slash command answered by a modsheet.Reply.
type modCommand struct {
	name        string
	description string
	options     []*discordgo.ApplicationCommandOption
	deferred    bool
	handle      func(ctx *core.Context) modsheet.Reply
	complete    map[string]completer
}

var (
	_ core.Command             = (*modCommand)(nil)
	_ core.AutocompleteHandler = (*modCommand)(nil)
	_ core.DeferredCommand     = (*modCommand)(nil)
)

func (c *modCommand) Name() string        { return c.name }
func (c *modCommand) Description() string { return c.description }
func (c *modCommand) Options() []*discordgo.ApplicationCommandOption {
	return c.options
}
func (c *modCommand) Deferred() bool { return c.deferred }

// Handle sends the reply. Failed replies are logged and still delivered as
// regular messages, so the router never answers twice.
func (c *modCommand) Handle(ctx *core.Context) error {
	reply := c.handle(ctx)
	if reply.Err != nil {
		ctx.Logger.WithError(reply.Err).Warn("Command replied with an error")
	}
	return ctx.Respond(reply.Content, reply.Ephemeral)
}

func (c *modCommand) HandleAutocomplete(ctx *core.Context, focusedOption string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	fn, ok := c.complete[focusedOption]
	if !ok {
		return nil, nil
	}
	values, err := fn(ctx, ctx.Options().String(focusedOption))
	if err != nil {
		return nil, err
	}
	return core.CreateChoicesFromStrings(values), nil
}

func pageOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        optPage,
		Description: "Número de página",
		Required:    false,
	}
}

func stringOption(name, description string, required, autocomplete bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         name,
		Description:  description,
		Required:     required,
		Autocomplete: autocomplete,
	}
}

// page returns the requested page, defaulting to the first.
func page(ctx *core.Context) int {
	return int(ctx.Options().IntOr(optPage, 1))
}

func floatPtr(v float64) *float64 { return &v }
