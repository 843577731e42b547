package portfolio

import (
	"context"
	"time"

	"github.com/coinfolio/coinfolio/internal/common"
	"github.com/coinfolio/coinfolio/internal/interfaces"
	"github.com/coinfolio/coinfolio/internal/models"
)

// Service implements interfaces.PortfolioService.
//
// LoadLedger is the only method that touches collaborators: one store read
// and one batched price fetch per refresh, taken as a single consistent
// snapshot. Everything downstream is a pure function of that snapshot, so
// repeated computation on an unchanged snapshot returns identical results.
// The service holds no locks and no state; callers serialize writes and
// recomputation per owner.
type Service struct {
	loader interfaces.LedgerLoader
	prices interfaces.PriceClient
	logger *common.Logger
}

var _ interfaces.PortfolioService = (*Service)(nil)

// NewService creates a new portfolio service
func NewService(loader interfaces.LedgerLoader, prices interfaces.PriceClient, logger *common.Logger) *Service {
	return &Service{
		loader: loader,
		prices: prices,
		logger: logger,
	}
}

// LoadLedger takes one consistent snapshot of an owner's ledger and current
// prices. A store failure is fatal; a price fetch failure is not — every
// asset just degrades to its cached quote and is flagged during aggregation.
func (s *Service) LoadLedger(ctx context.Context, ownerID string) (*models.LedgerSnapshot, error) {
	txns, diags, err := s.loader.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, 8)
	seen := map[string]bool{}
	for _, t := range txns {
		if !seen[t.Symbol] {
			seen[t.Symbol] = true
			symbols = append(symbols, t.Symbol)
		}
	}

	quotes, err := s.prices.Quote(ctx, symbols)
	if err != nil {
		s.logger.Warn().Err(err).Str("owner", ownerID).
			Msg("Price fetch failed, falling back to cached quotes")
		quotes = map[string]float64{}
	}

	s.logger.Info().
		Str("owner", ownerID).
		Int("transactions", len(txns)).
		Int("quoted", len(quotes)).
		Msg("Ledger snapshot loaded")

	return &models.LedgerSnapshot{
		OwnerID:      ownerID,
		Transactions: txns,
		Prices:       models.PriceSnapshot{Prices: quotes, FetchedAt: time.Now()},
		Diagnostics:  diags,
		LoadedAt:     time.Now(),
	}, nil
}

// ComputePositions derives per-asset positions under the given view mode.
func (s *Service) ComputePositions(snap *models.LedgerSnapshot, mode models.ViewMode) ([]models.Position, []models.Diagnostic) {
	adjusted, diags := s.viewedLedger(snap, mode)
	positions, aggDiags := Aggregate(adjusted, snap.Prices)
	return positions, append(diags, aggDiags...)
}

// ComputeSummary derives portfolio totals under the given view mode. The
// holdings-view current value is always reported alongside, whatever view
// the totals were computed under.
func (s *Service) ComputeSummary(snap *models.LedgerSnapshot, mode models.ViewMode) (models.Summary, []models.Diagnostic) {
	adjusted, diags := s.viewedLedger(snap, mode)
	positions, aggDiags := Aggregate(adjusted, snap.Prices)

	summary := Summarize(positions, adjusted)
	summary.HoldingsCurrentValue = s.holdingsCurrentValue(snap, mode, positions)
	return summary, append(diags, aggDiags...)
}

// holdingsCurrentValue sums position values under the holdings view, reusing
// the already-computed positions when that is the view being summarized.
// Diagnostics from the side computation are discarded; the summarized view's
// own pipeline already reports them.
func (s *Service) holdingsCurrentValue(snap *models.LedgerSnapshot, mode models.ViewMode, positions []models.Position) float64 {
	if mode != models.ViewHoldings {
		viewed, _ := s.viewedLedger(snap, models.ViewHoldings)
		positions, _ = Aggregate(viewed, snap.Prices)
	}
	var total float64
	for _, p := range positions {
		total += p.CurrentValue
	}
	return total
}

// LedgerView returns the annotated per-leg ledger for the given view mode,
// with inclusion resolved, cost transfers applied, and leg values priced
// from the snapshot. Intended for presentation layers that render the raw
// transaction list.
func (s *Service) LedgerView(snap *models.LedgerSnapshot, mode models.ViewMode) ([]models.Transaction, []models.Diagnostic) {
	adjusted, diags := s.viewedLedger(snap, mode)
	return AnnotateLegMetrics(adjusted, snap.Prices), diags
}

// viewedLedger runs the shared view + cost-transfer pipeline.
func (s *Service) viewedLedger(snap *models.LedgerSnapshot, mode models.ViewMode) ([]models.Transaction, []models.Diagnostic) {
	viewed := ApplyView(snap.Transactions, mode)
	return TransferCost(viewed)
}
