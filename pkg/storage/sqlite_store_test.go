package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/small-frappuccino/modsheet/pkg/mods"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInitSeedsHeaderOnce(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "sheet.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := store.WriteCell(ctx, 1, 1, "Name"); err != nil {
		t.Fatalf("rename header: %v", err)
	}
	_ = store.Close()

	reopened := NewStore(dbPath)
	if err := reopened.Init(); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	grid, err := reopened.Grid(ctx)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if len(grid) != 1 || grid[0][0] != "Name" || len(grid[0]) != len(mods.Headers()) {
		t.Fatalf("header should be seeded once and kept, got %v", grid)
	}
}

func TestInitRejectsEmptyPath(t *testing.T) {
	if err := NewStore("").Init(); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestAppendAndReadAll(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)

	row, err := store.FirstEmptyRow(ctx)
	if err != nil {
		t.Fatalf("FirstEmptyRow: %v", err)
	}
	if row != 2 {
		t.Fatalf("expected first data row 2, got %d", row)
	}

	rec := mods.Record{Name: "Foo", Category: "-", Description: "Bar", Priority: mods.PriorityMedium, Alternative: mods.AlternativeNo, Link: "https://www.nexusmods.com/stardewvalley/mods/123"}
	if err := store.WriteRowRange(ctx, row, row, [][]string{rec.Values()}); err != nil {
		t.Fatalf("WriteRowRange: %v", err)
	}

	records, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	rec.Row = 2
	if diff := cmp.Diff([]mods.Record{rec}, records); diff != "" {
		t.Fatalf("ReadAll mismatch (-want +got):\n%s", diff)
	}

	if row, _ := store.FirstEmptyRow(ctx); row != 3 {
		t.Fatalf("expected next row 3, got %d", row)
	}
}

func TestFirstEmptyRowReusesGaps(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)

	for _, r := range []int{2, 3, 4} {
		if err := store.WriteCell(ctx, r, 1, "mod"); err != nil {
			t.Fatalf("WriteCell: %v", err)
		}
	}
	// Clearing the name reopens the row, as deleting a row's contents does in a sheet.
	if err := store.WriteCell(ctx, 3, 1, "  "); err != nil {
		t.Fatalf("WriteCell: %v", err)
	}

	row, err := store.FirstEmptyRow(ctx)
	if err != nil {
		t.Fatalf("FirstEmptyRow: %v", err)
	}
	if row != 3 {
		t.Fatalf("expected gap at row 3, got %d", row)
	}
}

func TestWriteCellOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)

	if err := store.WriteRowRange(ctx, 2, 2, [][]string{{"Lookup Anything", "Utilidad", "", "Alta", "", "No", "FALSE", ""}}); err != nil {
		t.Fatalf("WriteRowRange: %v", err)
	}
	if err := store.WriteCell(ctx, 2, mods.FieldInstalled.Column(), "TRUE"); err != nil {
		t.Fatalf("WriteCell: %v", err)
	}
	records, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 1 || !bool(records[0].Installed) {
		t.Fatalf("expected installed record, got %+v", records)
	}

	if err := store.WriteCell(ctx, 0, 1, "x"); err == nil {
		t.Fatalf("expected invalid cell error")
	}
}

func TestUninitializedStore(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never.db"))
	if _, err := store.ReadAll(context.Background()); err == nil {
		t.Fatalf("expected error before Init")
	}
}
