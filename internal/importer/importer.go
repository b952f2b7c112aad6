// Package importer reads ledger CSV exports back into canonical rows.
package importer

import (
	"io"
)

// Format names a CSV header layout.
type Format string

const (
	FormatAuto      Format = "auto"
	FormatCanonical Format = "canonical"
	FormatLegacy    Format = "legacy"
)

type Importer interface {
	ParseAs(format Format, r io.Reader) (*Result, error)
}
