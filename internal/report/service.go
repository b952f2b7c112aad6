package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/duo/internal/record"
)

// Uploader stores an export snapshot under the given object name.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) error
}

// Service builds reports over the current ledger.
type Service struct {
	records *record.Service
	now     func() time.Time
}

func NewService(records *record.Service) *Service {
	return &Service{records: records, now: time.Now}
}

// Summary covers the whole ledger; voided records are ignored.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	snap, err := s.records.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing ledger: %w", err)
	}

	summary := NewSummary(snap.Transactions, s.records.Participants(), s.now().In(s.records.Location()))
	summary.Issues = len(snap.Issues)

	return summary, nil
}

// Stats covers the records matching filter.
func (s *Service) Stats(ctx context.Context, filter record.Filter) (Stats, error) {
	snap, err := s.records.Refresh(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("refreshing ledger: %w", err)
	}

	return NewStats(record.Apply(snap.Transactions, filter)), nil
}

// Export writes the records matching filter as CSV, newest first. It
// returns the number of records written.
func (s *Service) Export(ctx context.Context, filter record.Filter, w io.Writer) (int, error) {
	snap, err := s.records.Refresh(ctx)
	if err != nil {
		return 0, fmt.Errorf("refreshing ledger: %w", err)
	}

	txs := record.History(record.Apply(snap.Transactions, filter))

	if err := WriteCSV(w, txs); err != nil {
		return 0, err
	}

	return len(txs), nil
}

// Archive uploads a CSV export and returns the object name used.
func (s *Service) Archive(ctx context.Context, filter record.Filter, up Uploader) (string, error) {
	var buf bytes.Buffer

	n, err := s.Export(ctx, filter, &buf)
	if err != nil {
		return "", err
	}

	name := ExportFilename(s.now().In(s.records.Location()))
	if err := up.Upload(ctx, name, &buf); err != nil {
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}

	slog.Info("archived export", "object", name, "records", n)

	return name, nil
}

func ExportFilename(at time.Time) string {
	return fmt.Sprintf("ledger_%s.csv", at.Format("20060102_150405"))
}
