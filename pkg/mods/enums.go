package mods

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Priority is the triage level of a mod. Its value is the label stored in the sheet.
type Priority string

const (
	PriorityHigh       Priority = "Alta"
	PriorityMedium     Priority = "Media"
	PriorityLow        Priority = "Baja"
	PriorityBanned     Priority = "Vetada"
	PriorityToEvaluate Priority = "Evaluar"

	// DefaultPriority is used when addmod receives no priority or an unknown one.
	DefaultPriority = PriorityMedium
)

// Priorities lists every priority in display order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow, PriorityBanned, PriorityToEvaluate}

var priorityAliases = map[string]Priority{
	"alta":        PriorityHigh,
	"high":        PriorityHigh,
	"media":       PriorityMedium,
	"medium":      PriorityMedium,
	"baja":        PriorityLow,
	"low":         PriorityLow,
	"vetada":      PriorityBanned,
	"banned":      PriorityBanned,
	"evaluar":     PriorityToEvaluate,
	"toevaluate":  PriorityToEvaluate,
	"to_evaluate": PriorityToEvaluate,
}

// ParsePriority maps a sheet label or English name to a Priority.
func ParsePriority(s string) (Priority, bool) {
	p, ok := priorityAliases[fold(s)]
	return p, ok
}

func (p Priority) String() string { return string(p) }

// Alternative tells whether a replacement mod exists.
type Alternative string

const (
	AlternativeYes Alternative = "Sí"
	AlternativeNo  Alternative = "No"

	DefaultAlternative = AlternativeNo
)

// Alternatives lists every alternative value in display order.
var Alternatives = []Alternative{AlternativeYes, AlternativeNo}

var alternativeAliases = map[string]Alternative{
	"sí":  AlternativeYes,
	"si":  AlternativeYes,
	"yes": AlternativeYes,
	"no":  AlternativeNo,
}

// ParseAlternative maps user or sheet text to an Alternative.
func ParseAlternative(s string) (Alternative, bool) {
	a, ok := alternativeAliases[fold(s)]
	return a, ok
}

func (a Alternative) String() string { return string(a) }

// Installed is the checkbox column of the sheet.
type Installed bool

const (
	installedTrue  = "TRUE"
	installedFalse = "FALSE"
)

var truthy = map[string]struct{}{
	"sí":        {},
	"si":        {},
	"true":      {},
	"verdadero": {},
}

// NormalizeInstalled maps the accepted spellings of "yes" to true and anything else to false.
// NormalizeInstalled(NormalizeInstalled(s).String()) == NormalizeInstalled(s).
func NormalizeInstalled(s string) Installed {
	_, ok := truthy[fold(s)]
	return Installed(ok)
}

// String returns the checkbox value written to the sheet.
func (i Installed) String() string {
	if i {
		return installedTrue
	}
	return installedFalse
}

// Mark renders the installed state for chat replies.
func (i Installed) Mark() string {
	if i {
		return "✅"
	}
	return "❌"
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// unaccent folds s and strips combining marks, so "Categoria" matches "Categoría".
func unaccent(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, fold(s))
	if err != nil {
		return fold(s)
	}
	return out
}
