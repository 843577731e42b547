package interfaces

import "context"

// PriceClient provides current unit prices for asset symbols.
type PriceClient interface {
	// Quote returns prices keyed by symbol for every symbol it can quote.
	// Symbols with no available quote are simply absent from the result;
	// the caller decides how to degrade. A returned error means the whole
	// fetch failed, not that an individual symbol is missing.
	Quote(ctx context.Context, symbols []string) (map[string]float64, error)
}
