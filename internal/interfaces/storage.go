// Package interfaces defines service contracts for Coinfolio
package interfaces

import (
	"context"

	"github.com/coinfolio/coinfolio/internal/models"
)

// TransactionStore persists one record per ledger transaction, scoped per
// owner. The engine only ever reads one owner's records at a time; writes and
// recomputation for an owner must be serialized by the caller.
type TransactionStore interface {
	// List returns all records for an owner. An owner with no records yields
	// an empty slice, not an error.
	List(ctx context.Context, ownerID string) ([]models.TransactionRecord, error)

	// Insert stores a new record, minting a transaction id when the record
	// has none, and returns the id.
	Insert(ctx context.Context, rec models.TransactionRecord) (string, error)

	// Update applies the record's fields to the row identified by
	// (transactionID, ownerID). Returns false when no such row exists.
	Update(ctx context.Context, transactionID, ownerID string, rec models.TransactionRecord) (bool, error)

	// Delete removes the row identified by (transactionID, ownerID).
	// Returns false when no such row exists.
	Delete(ctx context.Context, transactionID, ownerID string) (bool, error)
}

// StorageManager coordinates storage areas and their lifecycle.
type StorageManager interface {
	TransactionStore() TransactionStore

	// Lifecycle
	Close() error
}
