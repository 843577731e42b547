// Package portfolio derives cost-basis-aware positions and summaries from a
// transaction ledger.
package portfolio

import "github.com/coinfolio/coinfolio/internal/models"

// ApplyView returns an annotated copy of the ledger with each leg's
// inclusion resolved for the given view mode. The input is never mutated.
//
// All three views share this single function so they cannot drift apart:
//
//	TOTALS    — restructuring is invisible: both RESTRUCTURE kinds excluded,
//	            only BUY/SELL/TRANSFER contribute.
//	ORIGINAL  — the pre-restructuring snapshot: RESTRUCTURE_IN excluded,
//	            RESTRUCTURE_OUT with a positive stored quantity counts as
//	            still-held supply, non-positive OUT legs excluded.
//	HOLDINGS  — current holdings: RESTRUCTURE_OUT excluded (the old asset is
//	            gone), RESTRUCTURE_IN included (the new asset is held).
//
// EXCLUDE legs are out under every mode. Excluded legs keep their data but
// get Included=false and zeroed value/P&L annotations.
func ApplyView(txns []models.Transaction, mode models.ViewMode) []models.Transaction {
	out := make([]models.Transaction, len(txns))
	copy(out, txns)

	for i := range out {
		t := &out[i]

		if t.Kind == models.KindExclude {
			excludeLeg(t)
			continue
		}

		switch mode {
		case models.ViewTotals:
			if t.Kind == models.KindRestructureOut || t.Kind == models.KindRestructureIn {
				excludeLeg(t)
			}
		case models.ViewOriginal:
			switch t.Kind {
			case models.KindRestructureIn:
				excludeLeg(t)
			case models.KindRestructureOut:
				if t.RawQuantity > 0 {
					// Held supply in the prior composition, not a disposal.
					t.Included = true
					t.EffectiveQuantity = t.RawQuantity
				} else {
					excludeLeg(t)
				}
			}
		default: // holdings
			switch t.Kind {
			case models.KindRestructureOut:
				excludeLeg(t)
			case models.KindRestructureIn:
				t.Included = true
			}
		}
	}

	return out
}

func excludeLeg(t *models.Transaction) {
	t.Included = false
	t.CurrentValue = 0
	t.ProfitLoss = 0
	t.PercentChange = 0
}
