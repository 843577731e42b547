package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is the wire shape of one stored ledger entry. Quantities
// and prices are arbitrary-precision decimals on the wire and in the store;
// the ledger loader converts them to float64 once at the boundary.
//
// Optional columns were added across schema versions: records written before
// the restructuring migration carry an empty TransactionType (meaning BUY),
// a nil IncludeInPortfolio (meaning true), and nil adjusted/original price
// columns. The loader backfills all of them.
type TransactionRecord struct {
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id" badgerholdIndex:"UserID"`

	CoinName string `json:"coin_name"`
	Symbol   string `json:"symbol"`
	CoinID   string `json:"coin_id"`

	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	// CurrentPrice is the quote cached at last write, kept as a per-asset
	// fallback when the oracle is unavailable.
	CurrentPrice    decimal.Decimal `json:"current_price"`
	TargetSellPrice decimal.Decimal `json:"target_sell_price"`

	PurchaseDate string `json:"purchase_date"` // ISO date, e.g. "2024-03-01"
	PurchaseTime string `json:"purchase_time"` // ISO time, e.g. "14:30:00"

	TransactionType    string `json:"transaction_type,omitempty"`
	IncludeInPortfolio *bool  `json:"include_in_portfolio,omitempty"`
	RestructureGroup   string `json:"restructure_group,omitempty"`

	AdjustedPurchasePrice *decimal.Decimal `json:"adjusted_purchase_price,omitempty"`
	OriginalPurchasePrice *decimal.Decimal `json:"original_purchase_price,omitempty"`
	CostBasisTransferred  decimal.Decimal  `json:"cost_basis_transferred"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IncludedByDefault resolves the include_in_portfolio column, defaulting to
// true for legacy records that predate it.
func (r *TransactionRecord) IncludedByDefault() bool {
	if r.IncludeInPortfolio == nil {
		return true
	}
	return *r.IncludeInPortfolio
}
