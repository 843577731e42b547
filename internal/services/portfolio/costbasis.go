package portfolio

import (
	"sort"

	"github.com/coinfolio/coinfolio/internal/models"
)

// TransferCost returns a copy of the ledger with realized proceeds from each
// restructure group's OUT legs distributed across its IN legs in proportion
// to their original value. The newly acquired asset inherits the economic
// cost of the asset sold, so P&L reflects the true round trip instead of a
// fictitious zero-cost acquisition.
//
// Groups missing OUT or IN legs are left unadjusted and reported as
// group_imbalance diagnostics; that is a bookkeeping condition, not an error.
// The input is never mutated.
func TransferCost(txns []models.Transaction) ([]models.Transaction, []models.Diagnostic) {
	out := make([]models.Transaction, len(txns))
	copy(out, txns)

	groups := map[string][]int{}
	for i := range out {
		if g := out[i].RestructureGroup; g != "" {
			groups[g] = append(groups[g], i)
		}
	}

	// Deterministic group order keeps repeated runs identical.
	groupIDs := make([]string, 0, len(groups))
	for g := range groups {
		groupIDs = append(groupIDs, g)
	}
	sort.Strings(groupIDs)

	var diags []models.Diagnostic
	for _, g := range groupIDs {
		var outLegs, inLegs []int
		for _, i := range groups[g] {
			switch out[i].Kind {
			case models.KindRestructureOut:
				outLegs = append(outLegs, i)
			case models.KindRestructureIn:
				inLegs = append(inLegs, i)
			}
		}

		if len(outLegs) == 0 || len(inLegs) == 0 {
			diags = append(diags, models.Diagnostic{
				Kind:   models.DiagGroupImbalance,
				Ref:    g,
				Detail: "restructure group is missing OUT or IN legs, original cost retained",
			})
			continue
		}

		// Realized proceeds from the sold side, at original prices.
		var totalProceeds float64
		for _, i := range outLegs {
			q := out[i].Quantity
			if q < 0 {
				q = -q
			}
			totalProceeds += q * out[i].UnitPrice
		}
		if totalProceeds <= 0 {
			continue
		}

		var totalInValue float64
		for _, i := range inLegs {
			totalInValue += out[i].Quantity * out[i].UnitPrice
		}

		for _, i := range inLegs {
			leg := &out[i]
			proportion := 0.0
			if totalInValue > 0 {
				proportion = leg.Quantity * leg.UnitPrice / totalInValue
			}
			adjustedCost := totalProceeds * proportion

			leg.TransferredCost = adjustedCost
			if leg.Quantity > 0 {
				leg.AdjustedUnitPrice = adjustedCost / leg.Quantity
			} else {
				leg.AdjustedUnitPrice = 0
			}
		}
	}

	return out, diags
}
