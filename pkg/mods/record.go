// Package mods models the rows of the mod sheet and the read-side operations
// (filtering, pagination and suggestions) performed on them.
package mods

import "strings"

// HeaderRow is the sheet row holding the column labels; data starts below it.
const HeaderRow = 1

// Record is one mod row. Row is its 1-based position in the sheet and is the
// only identity a record has.
type Record struct {
	Row          int
	Name         string
	Category     string
	Description  string
	Priority     Priority
	Dependencies string
	Alternative  Alternative
	Installed    Installed
	Link         string
}

// Values returns the cells of r in column order, as written to the sheet.
func (r Record) Values() []string {
	return []string{
		r.Name,
		r.Category,
		r.Description,
		string(r.Priority),
		r.Dependencies,
		string(r.Alternative),
		r.Installed.String(),
		r.Link,
	}
}

// CategoryLabel returns the category or "-" when blank.
func (r Record) CategoryLabel() string {
	if strings.TrimSpace(r.Category) == "" {
		return "-"
	}
	return r.Category
}

// FromValues builds a record from the cells of a row laid out in column order.
// Missing trailing cells are treated as blank. Priority and alternative cells that
// match a known spelling are canonicalized; other text is kept as typed.
func FromValues(row int, cells []string) Record {
	cell := func(f Field) string {
		if int(f) < len(cells) {
			return strings.TrimSpace(cells[f])
		}
		return ""
	}

	rec := Record{
		Row:          row,
		Name:         cell(FieldName),
		Category:     cell(FieldCategory),
		Description:  cell(FieldDescription),
		Priority:     Priority(cell(FieldPriority)),
		Dependencies: cell(FieldDependencies),
		Alternative:  Alternative(cell(FieldAlternative)),
		Installed:    NormalizeInstalled(cell(FieldInstalled)),
		Link:         cell(FieldLink),
	}
	if p, ok := ParsePriority(string(rec.Priority)); ok {
		rec.Priority = p
	}
	if a, ok := ParseAlternative(string(rec.Alternative)); ok {
		rec.Alternative = a
	}
	return rec
}

// DecodeRows turns a sheet grid (header row first) into records. Columns are
// located by header label so a reordered sheet still reads correctly; unknown
// headers are ignored and, when no header matches at all, the fixed column order
// is assumed. Rows with a blank Name are skipped: FirstEmptyRow treats them as
// free, so they hold no mod.
func DecodeRows(grid [][]string) []Record {
	if len(grid) <= HeaderRow-1 {
		return nil
	}

	layout := columnLayout(grid[HeaderRow-1])
	records := make([]Record, 0, len(grid)-HeaderRow)
	for i := HeaderRow; i < len(grid); i++ {
		row := grid[i]
		cells := make([]string, fieldCount)
		for col, f := range layout {
			if f < 0 || col >= len(row) {
				continue
			}
			cells[f] = row[col]
		}
		if strings.TrimSpace(cells[FieldName]) == "" {
			continue
		}
		records = append(records, FromValues(i+1, cells))
	}
	return records
}

// columnLayout maps each sheet column to the field it holds, or -1.
func columnLayout(header []string) []Field {
	layout := make([]Field, len(header))
	matched := 0
	for col, label := range header {
		f, ok := ParseField(label)
		if !ok {
			layout[col] = -1
			continue
		}
		layout[col] = f
		matched++
	}
	if matched > 0 {
		return layout
	}
	return Fields()
}

