package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

type Rejection struct {
	Line int
	Err  error
}

type ImportResult struct {
	Imported int
	Skipped  int
	Rejected []Rejection
}

// Import appends canonical rows that are not yet in the ledger. Rows whose
// ID already exists are skipped, rows failing validation are rejected and
// the rest are written in order.
func (s *Service) Import(ctx context.Context, rows []ledger.Row, actor string) (*ImportResult, error) {
	snap, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.Migrate(ctx); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(snap.Transactions))
	for _, t := range snap.Transactions {
		if t.ID != "" {
			seen[t.ID] = struct{}{}
		}
	}

	n := s.normalizer()
	result := &ImportResult{}

	for i, row := range rows {
		tx := n.NormalizeRow(i, row)

		if tx.ID != "" {
			if _, ok := seen[tx.ID]; ok {
				result.Skipped++
				continue
			}
		} else {
			tx.ID = s.newID()
		}

		if tx.CreatedAt == "" {
			tx.CreatedAt = s.now().In(s.loc).Format(ledger.TimestampLayout)
			tx.CreatedBy = actor
		}

		if err := ledger.Validate(tx, s.participants, s.now()); err != nil {
			result.Rejected = append(result.Rejected, Rejection{Line: i + 1, Err: err})
			continue
		}

		if err := s.repo.Append(ctx, ledger.ToRow(tx)); err != nil {
			return result, fmt.Errorf("%w: appending imported row %d: %w", ledger.ErrSourceUnavailable, i+1, err)
		}

		seen[tx.ID] = struct{}{}
		result.Imported++
	}

	slog.Info("imported records",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"rejected", len(result.Rejected),
	)

	return result, nil
}
