package mods

import "testing"

func TestNormalizeInstalled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Installed
	}{
		{"sí", true},
		{"Sí", true},
		{"SI", true},
		{"si", true},
		{"true", true},
		{"TRUE", true},
		{"Verdadero", true},
		{"  si ", true},
		{"no", false},
		{"FALSE", false},
		{"yes", false},
		{"", false},
		{"1", false},
	}
	for _, tt := range tests {
		if got := NormalizeInstalled(tt.in); got != tt.want {
			t.Errorf("NormalizeInstalled(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeInstalledIdempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"sí", "si", "true", "verdadero", "no", "nope", ""} {
		once := NormalizeInstalled(in)
		twice := NormalizeInstalled(once.String())
		if once != twice {
			t.Errorf("NormalizeInstalled not idempotent for %q: %v then %v", in, once, twice)
		}
	}
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{"Alta", PriorityHigh, true},
		{"alta", PriorityHigh, true},
		{"High", PriorityHigh, true},
		{"MEDIA", PriorityMedium, true},
		{"vetada", PriorityBanned, true},
		{"ToEvaluate", PriorityToEvaluate, true},
		{"urgent", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePriority(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePriority(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseAlternative(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"Sí", "si", "SÍ", "yes"} {
		if got, ok := ParseAlternative(in); !ok || got != AlternativeYes {
			t.Errorf("ParseAlternative(%q) = %q, %v", in, got, ok)
		}
	}
	if got, ok := ParseAlternative("No"); !ok || got != AlternativeNo {
		t.Errorf("ParseAlternative(No) = %q, %v", got, ok)
	}
	if _, ok := ParseAlternative("maybe"); ok {
		t.Errorf("expected maybe to be rejected")
	}
}

func TestParseField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Field
	}{
		{"Nombre", FieldName},
		{"nombre", FieldName},
		{"categoría", FieldCategory},
		{"Categoria", FieldCategory},
		{"installed", FieldInstalled},
		{"INSTALADO", FieldInstalled},
		{"link", FieldLink},
		{"Dependencias", FieldDependencies},
	}
	for _, tt := range tests {
		got, ok := ParseField(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParseField(%q) = %v, %v; want %v", tt.in, got, ok, tt.want)
		}
	}
	if _, ok := ParseField("color"); ok {
		t.Errorf("expected unknown field to be rejected")
	}
	if FieldInstalled.Column() != 7 {
		t.Errorf("Instalado should be column 7, got %d", FieldInstalled.Column())
	}
}
