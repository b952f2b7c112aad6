package importer

import (
	"slices"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

// Profile describes the header layout of a ledger CSV export. Adding a new
// layout is adding a Profile to the profiles slice.
type Profile struct {
	Name     Format
	Required []string

	// column maps a header onto its canonical column.
	column func(name string, participants ledger.Participants) (string, bool)
}

// profiles is the ordered list tried during auto-detection.
var profiles = []Profile{
	{
		Name:     FormatCanonical,
		Required: []string{ledger.ColKind, ledger.ColDate, ledger.ColAmountBase},
		column: func(name string, _ ledger.Participants) (string, bool) {
			return name, slices.Contains(ledger.Columns, name)
		},
	},
	{
		Name:     FormatLegacy,
		Required: []string{"Tipo", "Fecha", "Monto"},
		column:   ledger.LegacyColumn,
	},
}

func profileByName(name Format) (*Profile, bool) {
	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i], true
		}
	}

	return nil, false
}
