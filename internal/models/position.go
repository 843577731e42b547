package models

import "time"

// Position is the derived state for one asset under one view mode. Never
// persisted — a pure function of the transaction set plus a price snapshot,
// recomputed on every query.
type Position struct {
	Symbol   string `json:"symbol"`
	CoinName string `json:"coin_name"`
	CoinID   string `json:"coin_id"`

	Quantity    float64 `json:"quantity"`
	AvgUnitCost float64 `json:"avg_unit_cost"`
	CostBasis   float64 `json:"cost_basis"`

	CurrentPrice  float64 `json:"current_price"`
	CurrentValue  float64 `json:"current_value"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`
	PercentReturn float64 `json:"percent_return"`

	// PriceUnavailable marks that the oracle had no quote and a cached or
	// zero price was used. Scoped to this asset only.
	PriceUnavailable bool `json:"price_unavailable,omitempty"`
}

// Summary aggregates positions into portfolio totals.
type Summary struct {
	TotalCostBasis    float64 `json:"total_cost_basis"`
	TotalCurrentValue float64 `json:"total_current_value"`
	TotalPnL          float64 `json:"total_pnl"`
	TotalReturnPct    float64 `json:"total_return_pct"`

	// HoldingsCurrentValue is the current value of the holdings view,
	// reported alongside the totals of whichever view was computed so a
	// caller can show "what you own now" next to round-trip performance.
	HoldingsCurrentValue float64 `json:"holdings_current_value"`

	// Restructuring bookkeeping over the whole ledger.
	CostBasisTransferred float64 `json:"cost_basis_transferred"`
	IncludedTransactions int     `json:"included_transactions"`
	ExcludedTransactions int     `json:"excluded_transactions"`
	TotalTransactions    int     `json:"total_transactions"`
}

// PriceSnapshot is one consistent set of quotes, fetched once per refresh.
// Assets missing from Prices had no quote at fetch time.
type PriceSnapshot struct {
	Prices    map[string]float64 `json:"prices"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Lookup returns the quoted unit price for a symbol.
func (ps PriceSnapshot) Lookup(symbol string) (float64, bool) {
	p, ok := ps.Prices[symbol]
	return p, ok
}

// LedgerSnapshot is an immutable view of one owner's ledger plus the price
// snapshot taken with it. All position computation is a pure function of a
// snapshot; the engine keeps no state between calls.
type LedgerSnapshot struct {
	OwnerID      string        `json:"owner_id"`
	Transactions []Transaction `json:"transactions"`
	Prices       PriceSnapshot `json:"prices"`
	Diagnostics  []Diagnostic  `json:"diagnostics,omitempty"`
	LoadedAt     time.Time     `json:"loaded_at"`
}
