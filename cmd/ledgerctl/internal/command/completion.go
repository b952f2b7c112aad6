package command

import (
	"maps"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/MrJamesThe3rd/duo/internal/importer"
	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

// Completion describes the command line for shell completion. Install it
// with COMP_INSTALL=1 ledgerctl.
func Completion() *complete.Command {
	filters := map[string]complete.Predictor{
		"person": predict.Something,
		"kind":   predict.Set{string(ledger.KindIncome), string(ledger.KindExpense), string(ledger.KindTransfer)},
		"method": predict.Something,
		"from":   predict.Something,
		"to":     predict.Something,
		"voided": predict.Nothing,
	}

	exportFlags := map[string]complete.Predictor{
		"o":       predict.Files("*.csv"),
		"archive": predict.Nothing,
	}
	maps.Copy(exportFlags, filters)

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"balances": {},
			"settle":   {Flags: map[string]complete.Predictor{"v": predict.Nothing}},
			"report": {Flags: map[string]complete.Predictor{
				"raw":   predict.Nothing,
				"width": predict.Something,
			}},
			"migrate": {},
			"import": {
				Flags: map[string]complete.Predictor{
					"format": predict.Set{string(importer.FormatAuto), string(importer.FormatCanonical), string(importer.FormatLegacy)},
					"actor":  predict.Something,
					"n":      predict.Nothing,
				},
				Args: predict.Files("*.csv"),
			},
			"export": {Flags: exportFlags},
			"token":  {Args: predict.Something},
			"help":   {},
			"flags":  {},
		},
	}
}
