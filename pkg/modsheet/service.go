// Package modsheet implements the bot's commands on top of a row store and the
// mod catalog. Every operation returns a Reply ready to be sent to the user.
package modsheet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/small-frappuccino/modsheet/pkg/log"
	"github.com/small-frappuccino/modsheet/pkg/mods"
	"github.com/small-frappuccino/modsheet/pkg/nexus"
	"github.com/small-frappuccino/modsheet/pkg/sheets"
)

// Catalog looks up mod metadata by catalog ID.
type Catalog interface {
	Mod(ctx context.Context, id int) (nexus.Mod, error)
}

// Reply is the text sent back for a command. Err carries the failure behind an
// error reply, for logging; Content is always set.
type Reply struct {
	Content   string
	Ephemeral bool
	Err       error
}

// Failed reports whether the reply describes an error.
func (r Reply) Failed() bool { return r.Err != nil }

// UserError is a request the user can fix by changing its arguments.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// Service answers mod commands.
type Service struct {
	store   sheets.RowStore
	catalog Catalog
}

// NewService returns a Service over store and catalog. A nil catalog makes
// addmod report a missing API key.
func NewService(store sheets.RowStore, catalog Catalog) *Service {
	if store == nil {
		store = sheets.Unavailable(nil)
	}
	return &Service{store: store, catalog: catalog}
}

// Help lists the available commands. It is only shown to the caller.
func (s *Service) Help() Reply {
	return Reply{Content: helpText, Ephemeral: true}
}

// AddRequest holds the arguments of addmod. Blank or unknown enum values fall
// back to Media, No and FALSE.
type AddRequest struct {
	ID          int
	Priority    string
	Alternative string
	Installed   string
}

// AddMod fetches a mod from the catalog and writes it into the first empty row.
func (s *Service) AddMod(ctx context.Context, req AddRequest) Reply {
	if s.catalog == nil {
		return errorReply(msgMissingAPIKey, nexus.ErrMissingAPIKey)
	}

	mod, err := s.catalog.Mod(ctx, req.ID)
	if err != nil {
		var statusErr *nexus.StatusError
		switch {
		case errors.Is(err, nexus.ErrMissingAPIKey):
			return errorReply(msgMissingAPIKey, err)
		case errors.As(err, &statusErr):
			return errorReply(fmt.Sprintf("❌ Error al acceder a la API: %d", statusErr.Code), err)
		default:
			return errorReply(fmt.Sprintf("❌ Error al acceder a la API: %v", err), err)
		}
	}

	priority, ok := mods.ParsePriority(req.Priority)
	if !ok {
		priority = mods.DefaultPriority
	}
	alternative, ok := mods.ParseAlternative(req.Alternative)
	if !ok {
		alternative = mods.DefaultAlternative
	}

	rec := mods.Record{
		Name:        mod.Name,
		Category:    "-",
		Description: mod.Summary,
		Priority:    priority,
		Alternative: alternative,
		Installed:   mods.NormalizeInstalled(req.Installed),
		Link:        mod.Link,
	}

	row, err := s.store.FirstEmptyRow(ctx)
	if err != nil {
		return storeError("❌ Ocurrió un error al añadir el mod", err)
	}
	if err := s.store.WriteRowRange(ctx, row, row, [][]string{rec.Values()}); err != nil {
		return storeError("❌ Ocurrió un error al añadir el mod", err)
	}

	log.SheetsLogger().WithFields(map[string]any{
		"operation": "addmod",
		"mod_id":    req.ID,
		"row":       row,
	}).Info("Mod added")
	return Reply{Content: fmt.Sprintf("✅ Mod añadido: **%s**", rec.Name)}
}

// UpdateField overwrites one cell of a data row. Installed values are normalized
// to the checkbox form; other fields are stored as given.
func (s *Service) UpdateField(ctx context.Context, row int, field, value string) Reply {
	f, ok := mods.ParseField(field)
	if !ok {
		return userError(fmt.Sprintf("❌ Campo inválido. Debe ser uno de: %s", mods.HeaderList()))
	}
	if row <= mods.HeaderRow {
		return userError(fmt.Sprintf("❌ Fila inválida. Usa una fila a partir de la %d.", mods.HeaderRow+1))
	}

	if f == mods.FieldInstalled {
		value = mods.NormalizeInstalled(value).String()
	}
	if err := s.store.WriteCell(ctx, row, f.Column(), value); err != nil {
		return storeError("❌ Ocurrió un error al actualizar la fila", err)
	}

	log.SheetsLogger().WithFields(map[string]any{
		"operation": "updatefield",
		"row":       row,
		"field":     f.String(),
	}).Info("Cell updated")
	return Reply{Content: fmt.Sprintf("✅ Fila %d actualizada: %s = %s", row, f.Header(), value)}
}

const msgMissingAPIKey = "❌ API Key de NexusMods no configurada."

func errorReply(content string, err error) Reply {
	return Reply{Content: content, Err: err}
}

func userError(msg string) Reply {
	return Reply{Content: msg, Err: &UserError{Message: msg}}
}

func storeError(prefix string, err error) Reply {
	if errors.Is(err, sheets.ErrNotConfigured) {
		return errorReply("❌ La hoja de mods no está configurada.", err)
	}
	return errorReply(fmt.Sprintf("%s: %v", prefix, err), err)
}

var helpText = strings.TrimSpace(`
📌 **Comandos disponibles**:

/listmods [page]
- Muestra los mods paginados (10 por página).

/mods [categoria] [page]
- Muestra mods filtrados por categoría. Si no se indica categoría, muestra resumen por categorías.

/mods_by_priority prioridad [page]
- Filtra mods por prioridad (Alta, Media, Baja, Vetada, Evaluar).

/mods_by_installed instalado [page]
- Filtra mods por si están instalados: "sí" o "no".

/mods_by_alternative alternativa [page]
- Filtra mods por si tienen alternativa: "Sí" o "No".

/search texto [page]
- Busca mods cuyo nombre o descripción contenga el texto dado.

/addmod mod_id [prioridad] [alternativa] [instalado]
- Añade un mod usando NexusMods API. Se puede indicar prioridad, alternativa y si está instalado.

/updatefield fila campo valor
- Actualiza un campo concreto de una fila.
`)
