package portfolio

import (
	"math"
	"testing"

	"github.com/coinfolio/coinfolio/internal/models"
)

func TestSummarize_Totals(t *testing.T) {
	positions := []models.Position{
		{Symbol: "BTC", CostBasis: 1000, CurrentValue: 1500},
		{Symbol: "ETH", CostBasis: 600, CurrentValue: 450},
	}

	s := Summarize(positions, nil)
	if s.TotalCostBasis != 1600 {
		t.Errorf("TotalCostBasis = %v, want 1600", s.TotalCostBasis)
	}
	if s.TotalCurrentValue != 1950 {
		t.Errorf("TotalCurrentValue = %v, want 1950", s.TotalCurrentValue)
	}
	if s.TotalPnL != 350 {
		t.Errorf("TotalPnL = %v, want 350", s.TotalPnL)
	}
	if math.Abs(s.TotalReturnPct-21.875) > 1e-9 {
		t.Errorf("TotalReturnPct = %v, want 21.875", s.TotalReturnPct)
	}
}

func TestSummarize_ZeroCostBasisGuarded(t *testing.T) {
	positions := []models.Position{
		{Symbol: "XYZ", CostBasis: 0, CurrentValue: 200},
	}
	s := Summarize(positions, nil)
	if s.TotalReturnPct != 0 {
		t.Errorf("TotalReturnPct = %v, want guarded 0", s.TotalReturnPct)
	}
	if math.IsNaN(s.TotalReturnPct) || math.IsInf(s.TotalReturnPct, 0) {
		t.Error("TotalReturnPct must never be Inf or NaN")
	}
}

func TestSummarize_LedgerCounts(t *testing.T) {
	viewed := ApplyView(restructureLedger(), models.ViewTotals)
	adjusted, _ := TransferCost(viewed)

	s := Summarize(nil, adjusted)
	if s.TotalTransactions != 5 {
		t.Errorf("TotalTransactions = %d, want 5", s.TotalTransactions)
	}
	// TOTALS excludes both restructuring legs and the EXCLUDE leg.
	if s.ExcludedTransactions != 3 {
		t.Errorf("ExcludedTransactions = %d, want 3", s.ExcludedTransactions)
	}
	if s.IncludedTransactions != 2 {
		t.Errorf("IncludedTransactions = %d, want 2", s.IncludedTransactions)
	}
	if math.Abs(s.CostBasisTransferred-1000) > 1e-9 {
		t.Errorf("CostBasisTransferred = %v, want 1000", s.CostBasisTransferred)
	}
}

// The engine's core correctness check: under the totals view, current value
// equals cost basis plus P&L within relative tolerance.
func TestSummarize_BalanceIdentityUnderTotals(t *testing.T) {
	ledgers := [][]models.Transaction{
		restructureLedger(),
		{
			leg("BTC", models.KindBuy, 10, 100, 1, 0),
			leg("BTC", models.KindSell, 4, 120, 2, 1),
			leg("ETH", models.KindBuy, 3, 2000, 1, 2),
			leg("XYZ", models.KindBuy, 100, 0, 1, 3),
		},
		{
			leg("BTC", models.KindSell, 2, 100, 1, 0), // over-sell only
		},
	}
	prices := snapshotPrices(map[string]float64{"BTC": 150, "ETH": 1900, "SOL": 1.4, "XYZ": 2})

	for i, ledger := range ledgers {
		viewed := ApplyView(ledger, models.ViewTotals)
		adjusted, _ := TransferCost(viewed)
		positions, _ := Aggregate(adjusted, prices)
		s := Summarize(positions, adjusted)

		diff := math.Abs(s.TotalCurrentValue - (s.TotalCostBasis + s.TotalPnL))
		scale := math.Max(math.Abs(s.TotalCurrentValue), 1)
		if diff/scale > 1e-6 {
			t.Errorf("ledger %d: balance identity violated: value=%v cost=%v pnl=%v",
				i, s.TotalCurrentValue, s.TotalCostBasis, s.TotalPnL)
		}
	}
}

func TestAnnotateLegMetrics(t *testing.T) {
	viewed := ApplyView(restructureLedger(), models.ViewHoldings)
	adjusted, _ := TransferCost(viewed)
	prices := snapshotPrices(map[string]float64{"BTC": 40000, "SOL": 1.4})

	out := AnnotateLegMetrics(adjusted, prices)

	for _, txn := range out {
		switch {
		case txn.Symbol == "SOL" && txn.Included:
			// 1000 SOL at $1.40 against the $1000 inherited basis.
			if math.Abs(txn.CurrentValue-1400) > 1e-9 {
				t.Errorf("SOL CurrentValue = %v, want 1400", txn.CurrentValue)
			}
			if math.Abs(txn.ProfitLoss-400) > 1e-9 {
				t.Errorf("SOL ProfitLoss = %v, want 400", txn.ProfitLoss)
			}
			if math.Abs(txn.PercentChange-40) > 1e-9 {
				t.Errorf("SOL PercentChange = %v, want 40", txn.PercentChange)
			}
		case !txn.Included:
			if txn.CurrentValue != 0 || txn.ProfitLoss != 0 {
				t.Errorf("excluded %s leg must stay zeroed", txn.Symbol)
			}
		}
	}

	if adjusted[0].CurrentValue != 0 {
		t.Error("AnnotateLegMetrics must not mutate its input")
	}
}

func TestAnnotateLegMetrics_ZeroInvestmentGuard(t *testing.T) {
	ledger := []models.Transaction{leg("XYZ", models.KindBuy, 100, 0, 1, 0)}
	out := AnnotateLegMetrics(ledger, snapshotPrices(map[string]float64{"XYZ": 2}))

	if out[0].PercentChange != 0 {
		t.Errorf("PercentChange = %v, want guarded 0 for zero investment", out[0].PercentChange)
	}
	if math.IsNaN(out[0].PercentChange) || math.IsInf(out[0].PercentChange, 0) {
		t.Error("PercentChange must never be Inf or NaN")
	}
}
