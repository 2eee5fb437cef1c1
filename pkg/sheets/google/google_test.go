package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"
)

type fakeSheets struct {
	mu      sync.Mutex
	grid    [][]any
	updates []update
}

type update struct {
	Path   string
	Query  string
	Values [][]any
}

func (f *fakeSheets) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "!A:A"):
			col := make([][]any, len(f.grid))
			for i, row := range f.grid {
				if len(row) > 0 {
					col[i] = []any{row[0]}
				} else {
					col[i] = []any{}
				}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"majorDimension": "ROWS", "values": col})
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/values/"):
			_ = json.NewEncoder(w).Encode(map[string]any{"majorDimension": "ROWS", "values": f.grid})
		case r.Method == http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			var vr struct {
				Values [][]any `json:"values"`
			}
			if err := json.Unmarshal(body, &vr); err != nil {
				t.Errorf("decode update body: %v", err)
			}
			f.updates = append(f.updates, update{Path: r.URL.Path, Query: r.URL.RawQuery, Values: vr.Values})
			_ = json.NewEncoder(w).Encode(map[string]any{"updatedCells": 1})
		default:
			http.NotFound(w, r)
		}
	})
}

func newTestStore(t *testing.T, grid [][]any) (*Store, *fakeSheets) {
	t.Helper()
	fake := &fakeSheets{grid: grid}
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	store, err := New(context.Background(), Options{
		SpreadsheetID: "sheet-id",
		Worksheet:     "MODS",
		ClientOptions: []option.ClientOption{
			option.WithEndpoint(server.URL + "/"),
			option.WithoutAuthentication(),
			option.WithHTTPClient(server.Client()),
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store, fake
}

func TestReadAllDecodesByHeader(t *testing.T) {
	store, _ := newTestStore(t, [][]any{
		{"Nombre", "Categoría", "Descripción", "Prioridad", "Dependencias", "Alternativa", "Instalado", "Link"},
		{"Lookup Anything", "Utilidad", "Shows info", "Alta", "", "No", "TRUE", "https://example.com"},
		{},
		{"Tractor Mod", "Granja"},
	})

	records, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Row != 2 || records[0].Name != "Lookup Anything" || !bool(records[0].Installed) {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].Row != 4 || records[1].Category != "Granja" {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestFirstEmptyRowReusesGap(t *testing.T) {
	store, _ := newTestStore(t, [][]any{{"Nombre"}, {"A"}, {}, {"B"}})
	row, err := store.FirstEmptyRow(context.Background())
	if err != nil {
		t.Fatalf("FirstEmptyRow: %v", err)
	}
	if row != 3 {
		t.Fatalf("expected row 3, got %d", row)
	}
}

func TestWritesUseUserEnteredRanges(t *testing.T) {
	store, fake := newTestStore(t, [][]any{{"Nombre"}})

	if err := store.WriteCell(context.Background(), 7, 7, "TRUE"); err != nil {
		t.Fatalf("WriteCell: %v", err)
	}
	row := []string{"Foo", "-", "Bar", "Media", "", "No", "FALSE", "https://example.com/mods/123"}
	if err := store.WriteRowRange(context.Background(), 5, 5, [][]string{row}); err != nil {
		t.Fatalf("WriteRowRange: %v", err)
	}

	if len(fake.updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(fake.updates))
	}
	cell := fake.updates[0]
	if !strings.HasSuffix(cell.Path, "!G7:G7") || !strings.Contains(cell.Query, "valueInputOption=USER_ENTERED") {
		t.Fatalf("unexpected cell update: %+v", cell)
	}
	if cell.Values[0][0] != "TRUE" {
		t.Fatalf("unexpected cell value: %v", cell.Values)
	}
	rng := fake.updates[1]
	if !strings.HasSuffix(rng.Path, "!A5:H5") || len(rng.Values[0]) != 8 {
		t.Fatalf("unexpected range update: %+v", rng)
	}
}

func TestWriteRowRangeValidates(t *testing.T) {
	store, fake := newTestStore(t, nil)
	if err := store.WriteRowRange(context.Background(), 5, 6, [][]string{{"x"}}); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(fake.updates) != 0 {
		t.Fatalf("expected no request on invalid range")
	}
}
