// Package ledger loads raw transaction records into typed ledger entries.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/coinfolio/coinfolio/internal/common"
	"github.com/coinfolio/coinfolio/internal/interfaces"
	"github.com/coinfolio/coinfolio/internal/models"
)

// Service implements interfaces.LedgerLoader.
type Service struct {
	store  interfaces.TransactionStore
	logger *common.Logger
}

// NewService creates a new ledger loader
func NewService(store interfaces.TransactionStore, logger *common.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Load reads one owner's records and maps them to typed transactions.
//
// A store failure is fatal: the error wraps models.ErrStoreUnavailable and no
// partial result is returned. Malformed records are skipped, logged, and
// reported as invalid_transaction diagnostics; the rest of the ledger still
// loads. An owner with no records yields an empty slice and no error.
func (s *Service) Load(ctx context.Context, ownerID string) ([]models.Transaction, []models.Diagnostic, error) {
	records, err := s.store.List(ctx, ownerID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: listing transactions for owner %s: %v", models.ErrStoreUnavailable, ownerID, err)
	}

	transactions := make([]models.Transaction, 0, len(records))
	var diags []models.Diagnostic

	for _, rec := range records {
		txn, err := mapRecord(&rec)
		if err != nil {
			s.logger.Warn().
				Str("owner", ownerID).
				Str("transaction", rec.TransactionID).
				Err(err).
				Msg("Skipping malformed transaction record")
			diags = append(diags, models.Diagnostic{
				Kind:   models.DiagInvalidTransaction,
				Ref:    rec.TransactionID,
				Detail: err.Error(),
			})
			continue
		}
		txn.Seq = len(transactions)
		transactions = append(transactions, *txn)
	}

	s.logger.Debug().
		Str("owner", ownerID).
		Int("loaded", len(transactions)).
		Int("skipped", len(diags)).
		Msg("Ledger loaded")

	return transactions, diags, nil
}

// mapRecord converts one wire record into a typed transaction, normalizing
// the sign convention and backfilling fields that legacy records lack:
// kind defaults to BUY, inclusion to true, the adjusted price to the
// original price, and transferred cost to zero.
func mapRecord(rec *models.TransactionRecord) (*models.Transaction, error) {
	kind, err := models.ParseTransactionKind(rec.TransactionType)
	if err != nil {
		return nil, err
	}

	price := rec.PurchasePrice.InexactFloat64()
	if price < 0 {
		return nil, fmt.Errorf("negative purchase price %v", rec.PurchasePrice)
	}

	occurredAt, err := parseOccurredAt(rec.PurchaseDate, rec.PurchaseTime)
	if err != nil {
		return nil, err
	}

	adjusted := price
	if rec.AdjustedPurchasePrice != nil {
		adjusted = rec.AdjustedPurchasePrice.InexactFloat64()
	}

	rawQty := rec.Quantity.InexactFloat64()
	qty := kind.SignedQuantity(rawQty)

	return &models.Transaction{
		ID:                rec.TransactionID,
		OwnerID:           rec.UserID,
		CoinName:          rec.CoinName,
		Symbol:            rec.Symbol,
		CoinID:            rec.CoinID,
		Kind:              kind,
		Quantity:          qty,
		RawQuantity:       rawQty,
		EffectiveQuantity: qty,
		UnitPrice:         price,
		AdjustedUnitPrice: adjusted,
		TransferredCost:   rec.CostBasisTransferred.InexactFloat64(),
		RestructureGroup:  rec.RestructureGroup,
		Included:          rec.IncludedByDefault(),
		CachedPrice:       rec.CurrentPrice.InexactFloat64(),
		TargetSellPrice:   rec.TargetSellPrice.InexactFloat64(),
		OccurredAt:        occurredAt,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}, nil
}

// parseOccurredAt combines the stored ISO date and time columns. The time
// column is optional; records missing it settle at midnight UTC.
func parseOccurredAt(date, clock string) (time.Time, error) {
	if date == "" {
		return time.Time{}, fmt.Errorf("missing purchase date")
	}
	if clock == "" {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid purchase date %q", date)
		}
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid purchase date/time %q %q", date, clock)
	}
	return t.UTC(), nil
}
