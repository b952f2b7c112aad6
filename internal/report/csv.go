package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

// WriteCSV writes the records in their stored form under the canonical
// headers.
func WriteCSV(w io.Writer, txs []ledger.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ledger.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, t := range txs {
		if err := cw.Write(ledger.ToRow(t).Values(ledger.Columns)); err != nil {
			return fmt.Errorf("writing record %s: %w", t.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}
