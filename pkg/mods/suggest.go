package mods

import "strings"

// Suggest returns the values containing prefix, ignoring case, in their given order.
// An empty prefix returns every value.
func Suggest(values []string, prefix string) []string {
	needle := fold(prefix)
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.Contains(fold(v), needle) {
			out = append(out, v)
		}
	}
	return out
}

// PrioritySuggestions completes a priority argument.
func PrioritySuggestions(prefix string) []string {
	values := make([]string, len(Priorities))
	for i, p := range Priorities {
		values[i] = string(p)
	}
	return Suggest(values, prefix)
}

// AlternativeSuggestions completes an alternative argument.
func AlternativeSuggestions(prefix string) []string {
	values := make([]string, len(Alternatives))
	for i, a := range Alternatives {
		values[i] = string(a)
	}
	return Suggest(values, prefix)
}

// InstalledSuggestions completes an installed argument.
func InstalledSuggestions(prefix string) []string {
	return Suggest([]string{"Sí", "No"}, prefix)
}

// FieldSuggestions completes a field name for updatefield.
func FieldSuggestions(prefix string) []string {
	return Suggest(Headers(), prefix)
}
