package mods

import "strings"

// Field is one of the fixed sheet columns, in header order.
type Field int

const (
	FieldName Field = iota
	FieldCategory
	FieldDescription
	FieldPriority
	FieldDependencies
	FieldAlternative
	FieldInstalled
	FieldLink

	fieldCount
)

var fieldHeaders = [fieldCount]string{
	"Nombre",
	"Categoría",
	"Descripción",
	"Prioridad",
	"Dependencias",
	"Alternativa",
	"Instalado",
	"Link",
}

var fieldNames = [fieldCount]string{
	"name",
	"category",
	"description",
	"priority",
	"dependencies",
	"alternative",
	"installed",
	"link",
}

// Fields returns every field in column order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// Headers returns the header row of the sheet.
func Headers() []string {
	return append([]string(nil), fieldHeaders[:]...)
}

// ParseField matches a header label or English field name, ignoring case.
func ParseField(s string) (Field, bool) {
	key := unaccent(s)
	if key == "" {
		return 0, false
	}
	for i := range fieldCount {
		if key == unaccent(fieldHeaders[i]) || key == fieldNames[i] {
			return i, true
		}
	}
	return 0, false
}

// Header is the column label in the sheet.
func (f Field) Header() string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return fieldHeaders[f]
}

// Column is the 1-based sheet column of f.
func (f Field) Column() int { return int(f) + 1 }

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// HeaderList joins the header labels for error messages.
func HeaderList() string {
	return strings.Join(fieldHeaders[:], ", ")
}
