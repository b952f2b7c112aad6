// Package sheets reads and writes the ledger as a Google Sheets tab whose
// first row holds the headers.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

const valueInput = "RAW"

type Store struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	sheet         string
}

// New builds a store authenticated with a service account key file. An
// empty path falls back to Application Default Credentials.
func New(ctx context.Context, spreadsheetID, sheet, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Store{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
	}, nil
}

func (s *Store) Headers(ctx context.Context) ([]string, error) {
	resp, err := s.values.Get(s.spreadsheetID, s.rangeOf("1:1")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}

	return cellStrings(resp.Values[0]), nil
}

func (s *Store) SetHeaders(ctx context.Context, headers []string) error {
	vr := &sheets.ValueRange{Values: [][]any{toCells(headers)}}

	_, err := s.values.Update(s.spreadsheetID, s.rangeOf("A1"), vr).
		ValueInputOption(valueInput).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	return nil
}

func (s *Store) ReadAll(ctx context.Context) ([]ledger.Row, error) {
	resp, err := s.values.Get(s.spreadsheetID, s.rangeOf("A:"+columnName(maxColumns))).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}

	headers := cellStrings(resp.Values[0])

	rows := make([]ledger.Row, 0, len(resp.Values)-1)
	for _, values := range resp.Values[1:] {
		rows = append(rows, ledger.RowFromValues(headers, cellStrings(values)))
	}

	return rows, nil
}

func (s *Store) Append(ctx context.Context, row ledger.Row) error {
	headers, err := s.Headers(ctx)
	if err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: [][]any{toCells(row.Values(headers))}}

	_, err = s.values.Append(s.spreadsheetID, s.rangeOf("A1"), vr).
		ValueInputOption(valueInput).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row: %w", err)
	}

	return nil
}

// Update overwrites a data row; data row 0 is sheet row 2.
func (s *Store) Update(ctx context.Context, rowIndex int, row ledger.Row) error {
	headers, err := s.Headers(ctx)
	if err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: [][]any{toCells(row.Values(headers))}}

	_, err = s.values.Update(s.spreadsheetID, s.rangeOf(fmt.Sprintf("A%d", rowIndex+2)), vr).
		ValueInputOption(valueInput).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("updating row %d: %w", rowIndex, err)
	}

	return nil
}

func (s *Store) rangeOf(cells string) string {
	if s.sheet == "" {
		return cells
	}

	return "'" + strings.ReplaceAll(s.sheet, "'", "''") + "'!" + cells
}

const maxColumns = 52

// columnName converts a 1-based column number to its letter form.
func columnName(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}

	return string(b)
}

func cellStrings(cells []any) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if c != nil {
			out[i] = fmt.Sprint(c)
		}
	}

	return out
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}
