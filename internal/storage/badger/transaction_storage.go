package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/coinfolio/coinfolio/internal/common"
	"github.com/coinfolio/coinfolio/internal/models"
)

type transactionStorage struct {
	store  *Store
	logger *common.Logger
}

// NewTransactionStorage creates a TransactionStore backed by BadgerHold.
func NewTransactionStorage(store *Store, logger *common.Logger) *transactionStorage {
	return &transactionStorage{store: store, logger: logger}
}

// recordKey builds the storage key. Transaction ids are unique per owner,
// not globally, so the owner id is part of the key.
func recordKey(ownerID, transactionID string) string {
	return ownerID + "/" + transactionID
}

func (s *transactionStorage) List(_ context.Context, ownerID string) ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	query := badgerhold.Where("UserID").Eq(ownerID).Index("UserID")
	if err := s.store.db.Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list transactions for owner %s: %w", ownerID, err)
	}

	// Stable order so loaders see a deterministic ledger.
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].TransactionID < records[j].TransactionID
	})

	return records, nil
}

func (s *transactionStorage) Insert(_ context.Context, rec models.TransactionRecord) (string, error) {
	if rec.UserID == "" {
		return "", fmt.Errorf("transaction record has no owner")
	}
	if rec.TransactionID == "" {
		rec.TransactionID = uuid.NewString()
	}
	if rec.TransactionType == "" {
		rec.TransactionType = string(models.KindBuy)
	}
	if rec.IncludeInPortfolio == nil {
		// Restructured-out and manually excluded legs never count toward
		// current portfolio value.
		included := rec.TransactionType != string(models.KindRestructureOut) &&
			rec.TransactionType != string(models.KindExclude)
		rec.IncludeInPortfolio = &included
	}

	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := s.store.db.Insert(recordKey(rec.UserID, rec.TransactionID), rec); err != nil {
		if err == badgerhold.ErrKeyExists {
			return "", fmt.Errorf("transaction '%s' already exists for owner %s", rec.TransactionID, rec.UserID)
		}
		return "", fmt.Errorf("failed to insert transaction: %w", err)
	}

	s.logger.Debug().
		Str("owner", rec.UserID).
		Str("transaction", rec.TransactionID).
		Str("type", rec.TransactionType).
		Msg("Transaction inserted")

	return rec.TransactionID, nil
}

func (s *transactionStorage) Update(_ context.Context, transactionID, ownerID string, rec models.TransactionRecord) (bool, error) {
	key := recordKey(ownerID, transactionID)

	var existing models.TransactionRecord
	if err := s.store.db.Get(key, &existing); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to get transaction '%s': %w", transactionID, err)
	}

	rec.TransactionID = transactionID
	rec.UserID = ownerID
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now()

	if err := s.store.db.Update(key, rec); err != nil {
		return false, fmt.Errorf("failed to update transaction '%s': %w", transactionID, err)
	}

	s.logger.Debug().
		Str("owner", ownerID).
		Str("transaction", transactionID).
		Msg("Transaction updated")

	return true, nil
}

func (s *transactionStorage) Delete(_ context.Context, transactionID, ownerID string) (bool, error) {
	key := recordKey(ownerID, transactionID)

	err := s.store.db.Delete(key, models.TransactionRecord{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete transaction '%s': %w", transactionID, err)
	}

	s.logger.Debug().
		Str("owner", ownerID).
		Str("transaction", transactionID).
		Msg("Transaction deleted")

	return true, nil
}
