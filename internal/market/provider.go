// Package market implements the current-price provider boundary.
//
// The accounting engine never fetches prices itself; it receives an optional
// current market price per asset. This package supplies that collaborator:
// a Provider fetches the latest quote for an asset, and failures are treated
// by callers as "no live price available", never as fatal.
package market

import (
	"context"
	"errors"

	"github.com/stvowns/portfolio-tracker/internal/model"
)

// ErrPriceUnavailable indicates the provider could not produce a usable
// quote for the symbol. Callers fall back to cost-basis valuation.
var ErrPriceUnavailable = errors.New("price unavailable")

// Provider fetches the current market price for an asset, in the asset's
// recorded currency. Implementations are injected, never reached through
// package-level state, so tests and callers control exactly which feed a
// computation sees.
type Provider interface {
	CurrentPrice(ctx context.Context, asset model.Asset) (float64, error)
}
