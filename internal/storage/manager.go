// Package storage provides the top-level StorageManager for the transaction
// ledger area.
package storage

import (
	"fmt"

	"github.com/coinfolio/coinfolio/internal/common"
	"github.com/coinfolio/coinfolio/internal/interfaces"
	"github.com/coinfolio/coinfolio/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over the BadgerHold ledger area.
type Manager struct {
	ledger *badger.Store
	logger *common.Logger
}

// NewManager creates a new StorageManager from config.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ledgerStore, err := badger.NewStore(logger, config.Storage.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger store: %w", err)
	}

	logger.Info().
		Str("ledger", config.Storage.Ledger.Path).
		Msg("Storage manager initialized")

	return &Manager{
		ledger: ledgerStore,
		logger: logger,
	}, nil
}

func (m *Manager) TransactionStore() interfaces.TransactionStore {
	return badger.NewTransactionStorage(m.ledger, m.logger)
}

// Close closes all storage areas.
func (m *Manager) Close() error {
	if m.ledger != nil {
		return m.ledger.Close()
	}
	return nil
}
