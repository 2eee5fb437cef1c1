// Package mods registers the slash commands that query and edit the mod sheet.
package mods

import (
	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modsheet/pkg/discord/commands/core"
	"github.com/small-frappuccino/modsheet/pkg/modsheet"
	sheetmods "github.com/small-frappuccino/modsheet/pkg/mods"
)

// Option names, as shown in Discord.
const (
	optPage        = "page"
	optCategory    = "categoria"
	optPriority    = "prioridad"
	optInstalled   = "instalado"
	optAlternative = "alternativa"
	optText        = "texto"
	optModID       = "mod_id"
	optRow         = "fila"
	optField       = "campo"
	optValue       = "valor"
)

// RegisterModCommands registers every mod command on router.
func RegisterModCommands(router *core.CommandRouter, svc *modsheet.Service) {
	for _, cmd := range NewModCommands(svc) {
		router.RegisterCommand(cmd)
	}
}

// NewModCommands builds the mod commands over svc.
func NewModCommands(svc *modsheet.Service) []core.Command {
	return []core.Command{
		&modCommand{
			name:        "help",
			description: "Muestra los comandos disponibles",
			handle: func(ctx *core.Context) modsheet.Reply {
				return svc.Help()
			},
		},
		&modCommand{
			name:        "listmods",
			description: "Muestra mods paginados",
			options:     []*discordgo.ApplicationCommandOption{pageOption()},
			handle: func(ctx *core.Context) modsheet.Reply {
				return svc.ListMods(ctx.Context(), page(ctx))
			},
		},
		&modCommand{
			name:        "mods",
			description: "Filtra mods por categoría",
			options: []*discordgo.ApplicationCommandOption{
				stringOption(optCategory, "Categoría de mod", false, true),
				pageOption(),
			},
			handle: func(ctx *core.Context) modsheet.Reply {
				return svc.ModsByCategory(ctx.Context(), ctx.Options().String(optCategory), page(ctx))
			},
			complete: map[string]completer{
				optCategory: func(ctx *core.Context, prefix string) ([]string, error) {
					categories, err := svc.Categories(ctx.Context())
					if err != nil {
						return nil, err
					}
					return sheetmods.Suggest(categories, prefix), nil
				},
			},
		},
		&modCommand{
			name:        "mods_by_priority",
			description: "Filtra mods por prioridad",
			options: []*discordgo.ApplicationCommandOption{
				stringOption(optPriority, "Prioridad del mod", true, true),
				pageOption(),
			},
			handle: func(ctx *core.Context) modsheet.Reply {
				return svc.ModsByPriority(ctx.Context(), ctx.Options().String(optPriority), page(ctx))
			},
			complete: map[string]completer{optPriority: static(sheetmods.PrioritySuggestions)},
		},
		&modCommand{
			name:        "mods_by_installed",
			description: "Filtra mods por si están instalados",
			options: []*discordgo.ApplicationCommandOption{
				stringOption(optInstalled, "Sí o No", true, true),
				pageOption(),
			},
			handle: func(ctx *core.Context) modsheet.Reply {
				return svc.ModsByInstalled(ctx.Context(), ctx.Options().String(optInstalled), page(ctx))
			},
			complete: map[string]completer{optInstalled: static(sheetmods.InstalledSuggestions)},
		},
		&modCommand{
			name:        "mods_by_alternative",
			description: "Filtra mods por alternativa",
			options: []*discordgo.ApplicationCommandOption{
				stringOption(optAlternative, "Sí o No", true, true),
				pageOption(),
			},
			handle: func(ctx *core.Context) modsheet.Reply {
				return svc.ModsByAlternative(ctx.Context(), ctx.Options().String(optAlternative), page(ctx))
			},
			complete: map[string]completer{optAlternative: static(sheetmods.AlternativeSuggestions)},
		},
		&modCommand{
			name:        "search",
			description: "Busca mods por texto",
			options: []*discordgo.ApplicationCommandOption{
				stringOption(optText, "Texto a buscar en nombre o descripción", true, false),
				pageOption(),
			},
			handle: func(ctx *core.Context) modsheet.Reply {
				return svc.Search(ctx.Context(), ctx.Options().String(optText), page(ctx))
			},
		},
		&modCommand{
			name:        "addmod",
			description: "Añade un mod usando NexusMods API",
			deferred:    true,
			options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optModID,
					Description: "ID del mod en NexusMods",
					Required:    true,
					MinValue:    floatPtr(1),
				},
				stringOption(optPriority, "Prioridad del mod", false, true),
				stringOption(optAlternative, "Si tiene alternativa", false, true),
				stringOption(optInstalled, "Si está instalado", false, true),
			},
			handle: func(ctx *core.Context) modsheet.Reply {
				opts := ctx.Options()
				id, err := opts.IntRequired(optModID)
				if err != nil {
					return modsheet.Reply{Content: "❌ Indica el ID del mod en NexusMods.", Err: err}
				}
				return svc.AddMod(ctx.Context(), modsheet.AddRequest{
					ID:          int(id),
					Priority:    opts.String(optPriority),
					Alternative: opts.String(optAlternative),
					Installed:   opts.String(optInstalled),
				})
			},
			complete: map[string]completer{
				optPriority:    static(sheetmods.PrioritySuggestions),
				optAlternative: static(sheetmods.AlternativeSuggestions),
				optInstalled:   static(sheetmods.InstalledSuggestions),
			},
		},
		&modCommand{
			name:        "updatefield",
			description: "Actualiza un campo concreto de una fila",
			options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optRow,
					Description: "Número de fila a actualizar",
					Required:    true,
					MinValue:    floatPtr(float64(sheetmods.HeaderRow + 1)),
				},
				stringOption(optField, "Nombre del campo", true, true),
				stringOption(optValue, "Nuevo valor", true, false),
			},
			handle: func(ctx *core.Context) modsheet.Reply {
				opts := ctx.Options()
				row, err := opts.IntRequired(optRow)
				if err != nil {
					return modsheet.Reply{Content: "❌ Indica el número de fila.", Err: err}
				}
				return svc.UpdateField(ctx.Context(), int(row), opts.String(optField), opts.String(optValue))
			},
			complete: map[string]completer{optField: static(sheetmods.FieldSuggestions)},
		},
	}
}
