package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/small-frappuccino/modsheet/pkg/errutil"
	"github.com/small-frappuccino/modsheet/pkg/mods"
	"github.com/small-frappuccino/modsheet/pkg/sheets"
)

// Store is a sheet kept in an embedded SQLite database: a set of cells addressed
// by 1-based row and column, with the header row seeded on Init.
// It uses modernc.org/sqlite for CGO-less builds.
type Store struct {
	dbPath string
	db     *sql.DB
}

var _ sheets.RowStore = (*Store)(nil)

// NewStore creates a new Store pointing to dbPath. Call Init() before using it.
func NewStore(dbPath string) *Store {
	return &Store{dbPath: dbPath}
}

// Init opens the SQLite database, configures pragmas, ensures the schema exists
// and writes the header row when the sheet is empty.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}
	if s.dbPath == "" {
		return fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o755); err != nil {
		return fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}

	// Pragmas for durability and concurrency
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return fmt.Errorf("set WAL: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout=5000;`); err != nil {
		_ = db.Close()
		return fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL;`); err != nil {
		_ = db.Close()
		return fmt.Errorf("set synchronous: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return err
	}
	s.db = db

	if err := s.seedHeader(context.Background()); err != nil {
		_ = db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) seedHeader(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cells WHERE row_index = ?`, mods.HeaderRow).Scan(&n); err != nil {
		return fmt.Errorf("check header row: %w", err)
	}
	if n > 0 {
		return nil
	}
	return s.WriteRowRange(ctx, mods.HeaderRow, mods.HeaderRow, [][]string{mods.Headers()})
}

// ReadAll loads every cell and decodes the grid by header.
func (s *Store) ReadAll(ctx context.Context) ([]mods.Record, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not initialized")
	}
	var grid [][]string
	err := errutil.HandleSheetsError("read_all", func() error {
		var err error
		grid, err = s.Grid(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mods.DecodeRows(grid), nil
}

// WriteCell upserts a single cell.
func (s *Store) WriteCell(ctx context.Context, row, column int, value string) error {
	if s.db == nil {
		return fmt.Errorf("store not initialized")
	}
	if err := sheets.ValidateCell(row, column); err != nil {
		return err
	}
	return errutil.HandleSheetsError("write_cell", func() error {
		_, err := s.db.ExecContext(ctx, upsertCell, row, column, value)
		return err
	})
}

// WriteRowRange upserts rows startRow..endRow from column 1 in one transaction.
func (s *Store) WriteRowRange(ctx context.Context, startRow, endRow int, values [][]string) error {
	if s.db == nil {
		return fmt.Errorf("store not initialized")
	}
	if err := sheets.ValidateRange(startRow, endRow, values); err != nil {
		return err
	}
	return errutil.HandleSheetsError("write_row_range", func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, upsertCell)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, row := range values {
			for j, v := range row {
				if _, err := stmt.ExecContext(ctx, startRow+i, j+1, v); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	})
}

// FirstEmptyRow returns the first row with a blank name cell, starting at row 1.
func (s *Store) FirstEmptyRow(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("store not initialized")
	}
	var column []string
	err := errutil.HandleSheetsError("first_empty_row", func() error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT row_index, value FROM cells WHERE col_index = ? AND TRIM(value) <> '' ORDER BY row_index`,
			mods.FieldName.Column())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var r int
			var v string
			if err := rows.Scan(&r, &v); err != nil {
				return err
			}
			for len(column) < r-1 {
				column = append(column, "")
			}
			column = append(column, v)
		}
		return rows.Err()
	})
	if err != nil {
		return 0, err
	}
	return sheets.FirstBlank(column), nil
}

// Grid returns the raw cells, header row first.
func (s *Store) Grid(ctx context.Context) ([][]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not initialized")
	}
	rows, err := s.db.QueryContext(ctx, `SELECT row_index, col_index, value FROM cells ORDER BY row_index, col_index`)
	if err != nil {
		return nil, fmt.Errorf("query cells: %w", err)
	}
	defer rows.Close()

	var grid [][]string
	for rows.Next() {
		var r, c int
		var v string
		if err := rows.Scan(&r, &c, &v); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		for len(grid) < r {
			grid = append(grid, nil)
		}
		for len(grid[r-1]) < c {
			grid[r-1] = append(grid[r-1], "")
		}
		grid[r-1][c-1] = v
	}
	return grid, rows.Err()
}

const upsertCell = `INSERT INTO cells (row_index, col_index, value) VALUES (?, ?, ?)
ON CONFLICT(row_index, col_index) DO UPDATE SET value = excluded.value`

func ensureSchema(db *sql.DB) error {
	const createCells = `
CREATE TABLE IF NOT EXISTS cells (
  row_index INTEGER NOT NULL CHECK (row_index >= 1),
  col_index INTEGER NOT NULL CHECK (col_index >= 1),
  value     TEXT    NOT NULL DEFAULT '',
  PRIMARY KEY (row_index, col_index)
);`
	if _, err := db.Exec(strings.TrimSpace(createCells)); err != nil {
		return fmt.Errorf("create cells table: %w", err)
	}
	return nil
}
