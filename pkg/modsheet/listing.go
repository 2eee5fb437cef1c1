package modsheet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/small-frappuccino/modsheet/pkg/mods"
)

// listing describes one paginated query.
type listing struct {
	// title is inserted between "Mods" and the page number; empty for no filter.
	title string
	icon  string
	pred  mods.Predicate
	empty string
	line  func(r mods.Record) string
}

func withInstalled(r mods.Record) string {
	return fmt.Sprintf("**%s** — %s — %s", r.Name, r.CategoryLabel(), r.Installed.Mark())
}

func withPriority(r mods.Record) string {
	return fmt.Sprintf("**%s** — %s — %s", r.Name, r.CategoryLabel(), priorityLabel(r))
}

func priorityLabel(r mods.Record) string {
	if strings.TrimSpace(string(r.Priority)) == "" {
		return "-"
	}
	return string(r.Priority)
}

// ListMods shows every mod, page by page.
func (s *Service) ListMods(ctx context.Context, page int) Reply {
	return s.list(ctx, page, listing{
		empty: "❌ No hay mods registrados.",
		line:  withInstalled,
	})
}

// ModsByCategory shows the mods of one category. Without a category it replies
// with the number of mods per category.
func (s *Service) ModsByCategory(ctx context.Context, category string, page int) Reply {
	category = strings.TrimSpace(category)
	if category == "" {
		return s.categorySummary(ctx)
	}
	return s.list(ctx, page, listing{
		title: "Categoría: " + category,
		pred:  mods.ByCategory(category),
		empty: fmt.Sprintf("❌ No hay mods en la categoría '%s'.", category),
		line: func(r mods.Record) string {
			return fmt.Sprintf("**%s** — %s", r.Name, r.Installed.Mark())
		},
	})
}

// ModsByPriority shows the mods with the given priority.
func (s *Service) ModsByPriority(ctx context.Context, priority string, page int) Reply {
	return s.list(ctx, page, listing{
		title: "Prioridad: " + priority,
		pred:  mods.ByPriority(priority),
		empty: fmt.Sprintf("❌ No hay mods con prioridad '%s'.", priority),
		line:  withInstalled,
	})
}

// ModsByInstalled shows the mods whose installed checkbox matches installed.
func (s *Service) ModsByInstalled(ctx context.Context, installed string, page int) Reply {
	return s.list(ctx, page, listing{
		title: "Instalado: " + installed,
		pred:  mods.ByInstalled(installed),
		empty: fmt.Sprintf("❌ No hay mods con instalado = '%s'.", installed),
		line:  withPriority,
	})
}

// ModsByAlternative shows the mods whose alternative matches alternative.
func (s *Service) ModsByAlternative(ctx context.Context, alternative string, page int) Reply {
	return s.list(ctx, page, listing{
		title: "Alternativa: " + alternative,
		pred:  mods.ByAlternative(alternative),
		empty: fmt.Sprintf("❌ No hay mods con alternativa = '%s'.", alternative),
		line:  withPriority,
	})
}

// Search shows the mods whose name or description contains text.
func (s *Service) Search(ctx context.Context, text string, page int) Reply {
	if strings.TrimSpace(text) == "" {
		return userError("❌ Indica un texto para buscar.")
	}
	return s.list(ctx, page, listing{
		title: fmt.Sprintf("Búsqueda: '%s'", text),
		icon:  "🔍",
		pred:  mods.ByText(text),
		empty: fmt.Sprintf("❌ No se encontraron mods que contengan '%s'.", text),
		line:  withPriority,
	})
}

func (s *Service) list(ctx context.Context, page int, l listing) Reply {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return storeError("❌ Ocurrió un error", err)
	}

	matched := mods.Filter(records, l.pred)
	if len(matched) == 0 {
		return Reply{Content: l.empty}
	}

	p, err := mods.Paginate(len(matched), page, mods.PageSize)
	if err != nil {
		var pageErr *mods.PageError
		if errors.As(err, &pageErr) {
			return Reply{
				Content: fmt.Sprintf("❌ Página inválida. Usa una entre 1 y %d.", pageErr.PageCount),
				Err:     err,
			}
		}
		return errorReply(fmt.Sprintf("❌ Ocurrió un error: %v", err), err)
	}

	icon := l.icon
	if icon == "" {
		icon = "📋"
	}
	var b strings.Builder
	b.WriteString(icon + " **Mods — ")
	if l.title != "" {
		b.WriteString(l.title + " — ")
	}
	fmt.Fprintf(&b, "Página %d/%d**\n\n", p.Number, p.PageCount)
	for i, r := range p.Slice(matched) {
		fmt.Fprintf(&b, "%d. %s · fila %d\n", p.Start+i+1, l.line(r), r.Row)
	}
	fmt.Fprintf(&b, "\n_Mostrando %d–%d de %d_", p.Start+1, p.End, p.Total)
	return Reply{Content: b.String()}
}

func (s *Service) categorySummary(ctx context.Context) Reply {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return storeError("❌ Ocurrió un error", err)
	}
	if len(records) == 0 {
		return Reply{Content: "❌ No hay mods registrados."}
	}

	var b strings.Builder
	b.WriteString("📊 **Recuento de mods por categoría:**\n")
	for _, c := range mods.CategoryCounts(records) {
		fmt.Fprintf(&b, "- %s: %d\n", c.Category, c.Count)
	}
	return Reply{Content: strings.TrimRight(b.String(), "\n")}
}

// Categories returns the distinct non-blank categories in sheet order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, c := range mods.CategoryCounts(records) {
		if c.Category != "-" {
			out = append(out, c.Category)
		}
	}
	return out, nil
}
