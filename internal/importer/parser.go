package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/duo/internal/encoding"
	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

// Parser reads ledger CSV exports in any supported layout and encoding and
// produces rows keyed by canonical column names.
type Parser struct {
	participants ledger.Participants
}

func NewParser(participants ledger.Participants) *Parser {
	return &Parser{participants: participants}
}

type Result struct {
	Profile Format
	Charset enc.Charset
	Rows    []ledger.Row
}

// Parse detects the layout from the first header row matching a profile.
// Rows before the header and blank rows are skipped.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	return p.parse(r, FormatAuto)
}

// ParseAs forces the layout instead of detecting it.
func (p *Parser) ParseAs(format Format, r io.Reader) (*Result, error) {
	return p.parse(r, format)
}

func (p *Parser) parse(r io.Reader, format Format) (*Result, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	candidates := profiles
	if format != FormatAuto && format != "" {
		profile, ok := profileByName(format)
		if !ok {
			return nil, fmt.Errorf("unknown format: %s", format)
		}

		candidates = []Profile{*profile}
	}

	profile, cols, headerIdx := detectProfile(candidates, records)
	if profile == nil {
		return nil, fmt.Errorf("no matching header row found: expected columns for %s", formatNames(candidates))
	}

	return &Result{
		Profile: profile.Name,
		Charset: charset,
		Rows:    p.toRows(profile, cols, records[headerIdx+1:]),
	}, nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans records for a header that matches one of the
// candidates. It returns the matched profile, the column index map and the
// header row index.
func detectProfile(candidates []Profile, records [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range records {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
			if _, dup := cols[name]; name != "" && !dup {
				cols[name] = i
			}
		}

		for i := range candidates {
			if matchesProfile(&candidates[i], cols) {
				return &candidates[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.Required {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func (p *Parser) toRows(profile *Profile, cols colIndex, records [][]string) []ledger.Row {
	mapping := make(map[string]int, len(cols))

	for name, idx := range cols {
		canonical, ok := profile.column(name, p.participants)
		if !ok {
			continue
		}

		if prev, exists := mapping[canonical]; exists && prev < idx {
			continue
		}

		mapping[canonical] = idx
	}

	var rows []ledger.Row

	for _, record := range records {
		if blank(record) {
			continue
		}

		row := make(ledger.Row, len(mapping))
		for canonical, idx := range mapping {
			row[canonical] = cellValue(record, idx)
		}

		rows = append(rows, row)
	}

	return rows
}

// detectDelimiter picks ';' when the first non-empty line has more
// semicolons than commas.
func detectDelimiter(data []byte) rune {
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
			return ';'
		}

		return ','
	}

	return ','
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func formatNames(ps []Profile) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p.Name)
	}

	return strings.Join(names, " or ")
}
