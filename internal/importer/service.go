package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/record"
)

// Service parses CSV exports and appends the new records to the ledger.
type Service struct {
	parser  Importer
	records *record.Service
}

func NewService(records *record.Service) *Service {
	return &Service{
		parser:  NewParser(records.Participants()),
		records: records,
	}
}

// Parse reads a file without touching the ledger.
func (s *Service) Parse(format Format, r io.Reader) (*Result, error) {
	return s.parser.ParseAs(format, r)
}

// Import parses a file and appends the records whose ID is not in the
// ledger yet.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader, actor string) (*record.ImportResult, error) {
	parsed, err := s.parser.ParseAs(format, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrMalformedField, err)
	}

	slog.Info("parsed import file", "profile", parsed.Profile, "charset", parsed.Charset, "rows", len(parsed.Rows))

	result, err := s.records.Import(ctx, parsed.Rows, actor)
	if err != nil {
		return nil, fmt.Errorf("importing rows: %w", err)
	}

	return result, nil
}
