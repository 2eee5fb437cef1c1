// Package sheets defines the row store the bot reads and writes mods through.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/small-frappuccino/modsheet/pkg/mods"
)

// RowStore is a positional, sheet-like table of mod rows. Rows and columns are
// 1-based and row mods.HeaderRow holds the column labels.
type RowStore interface {
	// ReadAll returns every non-blank data row in sheet order.
	ReadAll(ctx context.Context) ([]mods.Record, error)
	// WriteCell overwrites a single cell.
	WriteCell(ctx context.Context, row, column int, value string) error
	// WriteRowRange overwrites rows startRow..endRow starting at column A.
	WriteRowRange(ctx context.Context, startRow, endRow int, values [][]string) error
	// FirstEmptyRow returns the first row whose identity (name) cell is blank,
	// or one past the last row when none is.
	FirstEmptyRow(ctx context.Context) (int, error)
}

// ErrNotConfigured is returned by the unavailable store.
var ErrNotConfigured = errors.New("row store not configured")

type unavailable struct{ err error }

// Unavailable returns a RowStore whose every operation fails with err (wrapping
// ErrNotConfigured), used when credentials are missing or the backend failed to open.
func Unavailable(err error) RowStore {
	if err == nil {
		return unavailable{err: ErrNotConfigured}
	}
	if errors.Is(err, ErrNotConfigured) {
		return unavailable{err: err}
	}
	return unavailable{err: fmt.Errorf("%w: %w", ErrNotConfigured, err)}
}

func (u unavailable) ReadAll(context.Context) ([]mods.Record, error) { return nil, u.err }
func (u unavailable) WriteCell(context.Context, int, int, string) error {
	return u.err
}
func (u unavailable) WriteRowRange(context.Context, int, int, [][]string) error {
	return u.err
}
func (u unavailable) FirstEmptyRow(context.Context) (int, error) { return 0, u.err }

// FirstBlank returns the 1-based index of the first blank value in column, or
// len(column)+1 when every value is set.
func FirstBlank(column []string) int {
	for i, v := range column {
		if strings.TrimSpace(v) == "" {
			return i + 1
		}
	}
	return len(column) + 1
}

// ValidateRange checks the arguments of WriteRowRange.
func ValidateRange(startRow, endRow int, values [][]string) error {
	if startRow < 1 || endRow < startRow {
		return fmt.Errorf("invalid row range %d:%d", startRow, endRow)
	}
	if len(values) != endRow-startRow+1 {
		return fmt.Errorf("row range %d:%d needs %d rows of values, got %d", startRow, endRow, endRow-startRow+1, len(values))
	}
	return nil
}

// ValidateCell checks the arguments of WriteCell.
func ValidateCell(row, column int) error {
	if row < 1 || column < 1 {
		return fmt.Errorf("invalid cell %d,%d", row, column)
	}
	return nil
}

// ColumnLetter converts a 1-based column number to its A1 letters (1 -> A, 27 -> AA).
func ColumnLetter(column int) string {
	var b []byte
	for column > 0 {
		column--
		b = append([]byte{byte('A' + column%26)}, b...)
		column /= 26
	}
	return string(b)
}

// A1 returns an A1-notation cell reference such as "D7".
func A1(row, column int) string {
	return fmt.Sprintf("%s%d", ColumnLetter(column), row)
}

// A1Range returns a worksheet-qualified range such as "'MODS'!A5:H5".
func A1Range(worksheet string, startRow, startCol, endRow, endCol int) string {
	return fmt.Sprintf("%s!%s:%s", quoteSheet(worksheet), A1(startRow, startCol), A1(endRow, endCol))
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// QualifiedRange prefixes an A1 range with the quoted worksheet name.
func QualifiedRange(worksheet, r string) string {
	return quoteSheet(worksheet) + "!" + r
}
