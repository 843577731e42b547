package interfaces

import (
	"context"

	"github.com/coinfolio/coinfolio/internal/models"
)

// LedgerLoader maps raw store records into typed transactions.
type LedgerLoader interface {
	// Load reads one owner's ledger. A store failure is fatal and returns
	// models.ErrStoreUnavailable with no partial result; malformed records
	// are skipped and reported as diagnostics alongside the rest.
	Load(ctx context.Context, ownerID string) ([]models.Transaction, []models.Diagnostic, error)
}

// PortfolioService derives positions and summaries from ledger snapshots.
// LoadLedger performs the only blocking work (one store read, one price
// fetch); the Compute methods are pure functions of the snapshot and are
// safe to call repeatedly with identical results.
type PortfolioService interface {
	// LoadLedger takes one consistent snapshot of the owner's ledger and
	// current prices.
	LoadLedger(ctx context.Context, ownerID string) (*models.LedgerSnapshot, error)

	// ComputePositions derives per-asset positions under the given view.
	ComputePositions(snap *models.LedgerSnapshot, mode models.ViewMode) ([]models.Position, []models.Diagnostic)

	// ComputeSummary derives portfolio totals under the given view.
	ComputeSummary(snap *models.LedgerSnapshot, mode models.ViewMode) (models.Summary, []models.Diagnostic)

	// LedgerView returns the annotated per-leg ledger under the given view,
	// with inclusion resolved, cost transfers applied, and legs valued from
	// the snapshot prices.
	LedgerView(snap *models.LedgerSnapshot, mode models.ViewMode) ([]models.Transaction, []models.Diagnostic)
}
