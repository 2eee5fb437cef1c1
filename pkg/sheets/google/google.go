// Package google implements sheets.RowStore on a Google Sheets worksheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/small-frappuccino/modsheet/pkg/errutil"
	"github.com/small-frappuccino/modsheet/pkg/log"
	"github.com/small-frappuccino/modsheet/pkg/mods"
	"github.com/small-frappuccino/modsheet/pkg/sheets"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// Options configures New.
type Options struct {
	// CredentialsJSON is the service-account key blob.
	CredentialsJSON []byte
	// SpreadsheetID addresses the spreadsheet directly. When empty the spreadsheet
	// is looked up by SpreadsheetName through Drive.
	SpreadsheetID   string
	SpreadsheetName string
	Worksheet       string
	// ClientOptions are appended after the credentials, e.g. to point at a test server.
	ClientOptions []option.ClientOption
}

// Store reads and writes one worksheet.
type Store struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
	worksheet     string
}

var _ sheets.RowStore = (*Store)(nil)

// New authenticates and resolves the spreadsheet.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Worksheet == "" {
		opts.Worksheet = "MODS"
	}
	var clientOpts []option.ClientOption
	if len(opts.CredentialsJSON) > 0 {
		clientOpts = append(clientOpts,
			option.WithCredentialsJSON(opts.CredentialsJSON),
			option.WithScopes(gsheets.SpreadsheetsScope, drive.DriveReadonlyScope),
		)
	}
	clientOpts = append(clientOpts, opts.ClientOptions...)
	if len(clientOpts) == 0 {
		return nil, fmt.Errorf("%w: no Google credentials", sheets.ErrNotConfigured)
	}

	svc, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	id := strings.TrimSpace(opts.SpreadsheetID)
	if id == "" {
		if id, err = lookupSpreadsheet(ctx, opts.SpreadsheetName, clientOpts); err != nil {
			return nil, err
		}
	}

	log.SheetsLogger().WithFields(map[string]any{
		"spreadsheet": id,
		"worksheet":   opts.Worksheet,
	}).Info("Google Sheets row store ready")

	return &Store{values: svc.Spreadsheets.Values, spreadsheetID: id, worksheet: opts.Worksheet}, nil
}

func lookupSpreadsheet(ctx context.Context, name string, clientOpts []option.ClientOption) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("spreadsheet id and name are both empty")
	}
	d, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return "", fmt.Errorf("create drive service: %w", err)
	}
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMimeType)
	list, err := d.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("find spreadsheet %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("spreadsheet %q not found or not shared with the service account", name)
	}
	return list.Files[0].Id, nil
}

// ReadAll reads the whole worksheet and decodes it by header.
func (s *Store) ReadAll(ctx context.Context) ([]mods.Record, error) {
	var grid [][]string
	err := errutil.HandleSheetsError("read_all", func() error {
		resp, err := s.values.Get(s.spreadsheetID, sheets.QualifiedRange(s.worksheet, "A:H")).Context(ctx).Do()
		if err != nil {
			return err
		}
		grid = toGrid(resp.Values)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mods.DecodeRows(grid), nil
}

// WriteCell writes a single cell with USER_ENTERED input so TRUE/FALSE keep the checkbox.
func (s *Store) WriteCell(ctx context.Context, row, column int, value string) error {
	if err := sheets.ValidateCell(row, column); err != nil {
		return err
	}
	rng := sheets.A1Range(s.worksheet, row, column, row, column)
	return s.update(ctx, "write_cell", rng, [][]string{{value}})
}

// WriteRowRange writes rows startRow..endRow from column A.
func (s *Store) WriteRowRange(ctx context.Context, startRow, endRow int, values [][]string) error {
	if err := sheets.ValidateRange(startRow, endRow, values); err != nil {
		return err
	}
	width := 1
	for _, row := range values {
		width = max(width, len(row))
	}
	rng := sheets.A1Range(s.worksheet, startRow, 1, endRow, width)
	return s.update(ctx, "write_row_range", rng, values)
}

// FirstEmptyRow scans column A, the identity column.
func (s *Store) FirstEmptyRow(ctx context.Context) (int, error) {
	var column []string
	err := errutil.HandleSheetsError("first_empty_row", func() error {
		resp, err := s.values.Get(s.spreadsheetID, sheets.QualifiedRange(s.worksheet, "A:A")).Context(ctx).Do()
		if err != nil {
			return err
		}
		for _, row := range toGrid(resp.Values) {
			if len(row) == 0 {
				column = append(column, "")
				continue
			}
			column = append(column, row[0])
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sheets.FirstBlank(column), nil
}

func (s *Store) update(ctx context.Context, operation, rng string, values [][]string) error {
	body := &gsheets.ValueRange{Range: rng, MajorDimension: "ROWS", Values: toInterfaces(values)}
	err := errutil.HandleSheetsError(operation, func() error {
		_, err := s.values.Update(s.spreadsheetID, rng, body).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		return err
	})
	if err != nil {
		return err
	}
	log.SheetsLogger().WithFields(map[string]any{"operation": operation, "range": rng}).Info("Sheet updated")
	return nil
}

func toGrid(values [][]any) [][]string {
	grid := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		grid[i] = cells
	}
	return grid
}

func toInterfaces(values [][]string) [][]any {
	out := make([][]any, len(values))
	for i, row := range values {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}
