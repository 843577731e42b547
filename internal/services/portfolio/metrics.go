package portfolio

import "github.com/coinfolio/coinfolio/internal/models"

// Summarize combines positions into portfolio totals. The viewed ledger is
// passed alongside so the summary can report inclusion counts and the total
// cost basis moved by restructuring.
//
// Under the totals view the identity
//
//	TotalCurrentValue == TotalCostBasis + TotalPnL
//
// holds within floating-point tolerance; it is the engine's core
// correctness check.
func Summarize(positions []models.Position, viewed []models.Transaction) models.Summary {
	var s models.Summary

	for _, p := range positions {
		s.TotalCostBasis += p.CostBasis
		s.TotalCurrentValue += p.CurrentValue
	}
	s.TotalPnL = s.TotalCurrentValue - s.TotalCostBasis
	if s.TotalCostBasis > 0 {
		s.TotalReturnPct = s.TotalPnL / s.TotalCostBasis * 100
	}

	s.TotalTransactions = len(viewed)
	for _, t := range viewed {
		if t.Included {
			s.IncludedTransactions++
		} else {
			s.ExcludedTransactions++
		}
		s.CostBasisTransferred += t.TransferredCost
	}

	return s
}

// AnnotateLegMetrics fills per-leg valuation on an annotated ledger copy:
// current value and P&L from the effective quantity at the adjusted unit
// price. Excluded legs stay zeroed. The input is never mutated.
func AnnotateLegMetrics(txns []models.Transaction, prices models.PriceSnapshot) []models.Transaction {
	out := make([]models.Transaction, len(txns))
	copy(out, txns)

	for i := range out {
		t := &out[i]
		if !t.Included {
			continue
		}

		currentPrice, ok := prices.Lookup(t.Symbol)
		if !ok {
			currentPrice = t.CachedPrice
		}

		t.CurrentValue = t.EffectiveQuantity * currentPrice
		investment := t.EffectiveQuantity * t.AdjustedUnitPrice
		t.ProfitLoss = t.CurrentValue - investment
		if investment != 0 {
			t.PercentChange = t.ProfitLoss / investment * 100
		} else {
			t.PercentChange = 0
		}
	}

	return out
}
