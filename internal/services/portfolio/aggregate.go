package portfolio

import (
	"sort"

	"github.com/coinfolio/coinfolio/internal/models"
)

// Aggregate replays the included legs per asset in time order and values the
// resulting net positions against the price snapshot.
//
// Replay rules, per asset from (netQuantity=0, costBasis=0):
//   - acquisitions add quantity always, but add cost only when the effective
//     unit price is positive — zero-price acquisitions (airdrops, staking
//     rewards) raise quantity with free basis;
//   - disposals are clamped to the held quantity and reduce cost at the
//     pre-sale average, never below zero;
//   - assets ending with no positive net quantity produce no position.
//
// Assets the snapshot cannot price fall back to the last cached quote, then
// zero, and are flagged; one asset's missing price never affects the others.
func Aggregate(txns []models.Transaction, prices models.PriceSnapshot) ([]models.Position, []models.Diagnostic) {
	bySymbol := map[string][]models.Transaction{}
	var symbols []string
	for _, t := range txns {
		if !t.Included {
			continue
		}
		if _, seen := bySymbol[t.Symbol]; !seen {
			symbols = append(symbols, t.Symbol)
		}
		bySymbol[t.Symbol] = append(bySymbol[t.Symbol], t)
	}
	sort.Strings(symbols)

	var positions []models.Position
	var diags []models.Diagnostic

	for _, symbol := range symbols {
		legs := bySymbol[symbol]
		sort.SliceStable(legs, func(i, j int) bool {
			if !legs[i].OccurredAt.Equal(legs[j].OccurredAt) {
				return legs[i].OccurredAt.Before(legs[j].OccurredAt)
			}
			return legs[i].Seq < legs[j].Seq
		})

		var netQuantity, costBasis float64
		for i := range legs {
			leg := &legs[i]
			qty := leg.EffectiveQuantity
			price := leg.AdjustedUnitPrice

			switch {
			case qty > 0:
				netQuantity += qty
				if price > 0 {
					costBasis += qty * price
				}
			case qty < 0 && netQuantity > 0:
				sellQty := -qty
				if sellQty > netQuantity {
					// Over-sell: clamp to held quantity, never go short.
					sellQty = netQuantity
				}
				avgCostBeforeSale := costBasis / netQuantity
				netQuantity -= sellQty
				costBasis -= sellQty * avgCostBeforeSale
				if costBasis < 0 {
					// Absorb floating-point drift from partial sells.
					costBasis = 0
				}
			}
		}

		if netQuantity <= 0 {
			continue
		}

		currentPrice, ok := prices.Lookup(symbol)
		priceUnavailable := !ok
		if priceUnavailable {
			currentPrice = lastCachedPrice(legs)
			detail := "no current quote, using last cached price"
			if currentPrice == 0 {
				detail = "no current quote and no cached price, valuing at zero"
			}
			diags = append(diags, models.Diagnostic{
				Kind:   models.DiagPriceUnavailable,
				Ref:    symbol,
				Detail: detail,
			})
		}

		currentValue := netQuantity * currentPrice
		pnl := currentValue - costBasis
		pct := 0.0
		if costBasis > 0 {
			pct = pnl / costBasis * 100
		}

		positions = append(positions, models.Position{
			Symbol:           symbol,
			CoinName:         legs[0].CoinName,
			CoinID:           legs[0].CoinID,
			Quantity:         netQuantity,
			AvgUnitCost:      costBasis / netQuantity,
			CostBasis:        costBasis,
			CurrentPrice:     currentPrice,
			CurrentValue:     currentValue,
			UnrealizedPnL:    pnl,
			PercentReturn:    pct,
			PriceUnavailable: priceUnavailable,
		})
	}

	return positions, diags
}

// lastCachedPrice returns the most recent non-zero quote persisted with the
// asset's records, or zero when none exists.
func lastCachedPrice(legs []models.Transaction) float64 {
	for i := len(legs) - 1; i >= 0; i-- {
		if legs[i].CachedPrice > 0 {
			return legs[i].CachedPrice
		}
	}
	return 0
}
