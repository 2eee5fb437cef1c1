// Package sheetstest provides an in-memory sheets.RowStore for tests.
package sheetstest

import (
	"context"
	"sync"

	"github.com/small-frappuccino/modsheet/pkg/mods"
	"github.com/small-frappuccino/modsheet/pkg/sheets"
)

// CellWrite records a WriteCell call.
type CellWrite struct {
	Row, Column int
	Value       string
}

// RangeWrite records a WriteRowRange call.
type RangeWrite struct {
	StartRow, EndRow int
	Values           [][]string
}

// Store is a grid of cells; row 1 is the header row.
type Store struct {
	mu   sync.Mutex
	grid [][]string

	CellWrites  []CellWrite
	RangeWrites []RangeWrite

	// Err, when set, is returned by every operation.
	Err error
}

var _ sheets.RowStore = (*Store)(nil)

// New returns a store holding the standard header row followed by records in order.
func New(records ...mods.Record) *Store {
	grid := [][]string{mods.Headers()}
	for _, r := range records {
		grid = append(grid, r.Values())
	}
	return &Store{grid: grid}
}

// NewGrid returns a store holding grid as-is.
func NewGrid(grid [][]string) *Store {
	cp := make([][]string, len(grid))
	for i, row := range grid {
		cp[i] = append([]string(nil), row...)
	}
	return &Store{grid: cp}
}

// Grid returns a copy of the cells.
func (s *Store) Grid() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([][]string, len(s.grid))
	for i, row := range s.grid {
		cp[i] = append([]string(nil), row...)
	}
	return cp
}

// Cell returns the value at row, column or "" when unset.
func (s *Store) Cell(row, column int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row < 1 || row > len(s.grid) || column < 1 || column > len(s.grid[row-1]) {
		return ""
	}
	return s.grid[row-1][column-1]
}

func (s *Store) ReadAll(context.Context) ([]mods.Record, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return mods.DecodeRows(s.Grid()), nil
}

func (s *Store) WriteCell(_ context.Context, row, column int, value string) error {
	if s.Err != nil {
		return s.Err
	}
	if err := sheets.ValidateCell(row, column); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(row, column, value)
	s.CellWrites = append(s.CellWrites, CellWrite{Row: row, Column: column, Value: value})
	return nil
}

func (s *Store) WriteRowRange(_ context.Context, startRow, endRow int, values [][]string) error {
	if s.Err != nil {
		return s.Err
	}
	if err := sheets.ValidateRange(startRow, endRow, values); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, row := range values {
		for j, v := range row {
			s.set(startRow+i, j+1, v)
		}
	}
	s.RangeWrites = append(s.RangeWrites, RangeWrite{StartRow: startRow, EndRow: endRow, Values: values})
	return nil
}

func (s *Store) FirstEmptyRow(context.Context) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	column := make([]string, 0, len(s.grid))
	for _, row := range s.grid {
		if len(row) == 0 {
			column = append(column, "")
			continue
		}
		column = append(column, row[0])
	}
	return sheets.FirstBlank(column), nil
}

func (s *Store) set(row, column int, value string) {
	for len(s.grid) < row {
		s.grid = append(s.grid, nil)
	}
	r := s.grid[row-1]
	for len(r) < column {
		r = append(r, "")
	}
	r[column-1] = value
	s.grid[row-1] = r
}
