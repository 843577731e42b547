// Package models defines data structures for Coinfolio
package models

import (
	"fmt"
	"strings"
	"time"
)

// TransactionKind is the closed set of ledger entry types.
type TransactionKind string

const (
	KindBuy            TransactionKind = "BUY"
	KindSell           TransactionKind = "SELL"
	KindRestructureOut TransactionKind = "RESTRUCTURE_OUT"
	KindRestructureIn  TransactionKind = "RESTRUCTURE_IN"
	KindTransfer       TransactionKind = "TRANSFER"
	KindExclude        TransactionKind = "EXCLUDE"
)

// ParseTransactionKind maps a stored transaction_type string to a kind.
// Legacy records predate the column and carry an empty value; those default
// to BUY. Anything else unrecognized is rejected so a typo cannot silently
// flip a disposal into an acquisition.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch TransactionKind(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return KindBuy, nil
	case KindBuy:
		return KindBuy, nil
	case KindSell:
		return KindSell, nil
	case KindRestructureOut:
		return KindRestructureOut, nil
	case KindRestructureIn:
		return KindRestructureIn, nil
	case KindTransfer:
		return KindTransfer, nil
	case KindExclude:
		return KindExclude, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// SignedQuantity derives the canonical signed quantity from the kind.
// BUY and RESTRUCTURE_IN supply units (positive), SELL and RESTRUCTURE_OUT
// dispose of them (negative). TRANSFER and EXCLUDE keep the stored sign.
// The stored sign is never trusted for the four directional kinds.
func (k TransactionKind) SignedQuantity(raw float64) float64 {
	switch k {
	case KindBuy, KindRestructureIn:
		return abs(raw)
	case KindSell, KindRestructureOut:
		return -abs(raw)
	default:
		return raw
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// ViewMode selects which transaction legs contribute to a computed position.
type ViewMode string

const (
	// ViewHoldings is the current-holdings view: restructured-out assets are
	// gone, restructured-in assets are held. The default.
	ViewHoldings ViewMode = "holdings"
	// ViewOriginal reconstructs the pre-restructuring composition for
	// historical display. Never used for current value.
	ViewOriginal ViewMode = "original"
	// ViewTotals is the grand-total view: restructuring is invisible, only
	// BUY/SELL/TRANSFER legs contribute.
	ViewTotals ViewMode = "totals"
)

// ParseViewMode maps a mode string to a ViewMode, defaulting to holdings.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewHoldings:
		return ViewHoldings, nil
	case ViewOriginal:
		return ViewOriginal, nil
	case ViewTotals:
		return ViewTotals, nil
	default:
		return "", fmt.Errorf("unknown view mode %q", s)
	}
}

// Transaction is one typed ledger entry, immutable once settled. Loaded from
// a TransactionRecord with signs normalized and legacy fields backfilled.
type Transaction struct {
	ID       string `json:"id"`
	OwnerID  string `json:"owner_id"`
	CoinName string `json:"coin_name"`
	Symbol   string `json:"symbol"`
	CoinID   string `json:"coin_id"`

	Kind TransactionKind `json:"kind"`

	// Quantity is signed, re-derived from Kind at load time.
	Quantity float64 `json:"quantity"`
	// RawQuantity is the stored quantity with its original sign. The
	// original-holdings view needs it: a RESTRUCTURE_OUT leg counts as prior
	// supply only when the stored quantity was positive.
	RawQuantity float64 `json:"raw_quantity"`
	// EffectiveQuantity is the quantity the aggregator replays. Equals
	// Quantity except under the original-holdings view, where positive
	// RESTRUCTURE_OUT legs are treated as still-held supply.
	EffectiveQuantity float64 `json:"effective_quantity"`

	// UnitPrice is the price actually paid per unit at transaction time.
	UnitPrice float64 `json:"unit_price"`
	// AdjustedUnitPrice carries the cost-basis-transfer result for
	// RESTRUCTURE_IN legs; for everything else it equals UnitPrice.
	AdjustedUnitPrice float64 `json:"adjusted_unit_price"`
	// TransferredCost is the cost basis inherited from the sold side of a
	// restructure group, zero outside restructuring.
	TransferredCost  float64 `json:"transferred_cost"`
	RestructureGroup string  `json:"restructure_group,omitempty"`

	// Included marks whether the leg contributes under the active view.
	Included bool `json:"included"`

	// CachedPrice is the last quote persisted with the record, used as a
	// fallback when the oracle has no current price for the asset.
	CachedPrice     float64 `json:"cached_price"`
	TargetSellPrice float64 `json:"target_sell_price"`

	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Seq is the insertion order within the loaded ledger, the deterministic
	// tie-break when two legs share a timestamp.
	Seq int `json:"seq"`

	// Per-leg valuation annotations, zeroed for excluded legs.
	CurrentValue  float64 `json:"current_value"`
	ProfitLoss    float64 `json:"profit_loss"`
	PercentChange float64 `json:"percent_change"`
}
