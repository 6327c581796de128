package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/stvowns/portfolio-tracker/internal/market"
	"github.com/stvowns/portfolio-tracker/internal/model"
)

// MockProvider is a market.Provider returning canned prices by symbol.
// Symbols without an entry fail with market.ErrPriceUnavailable, matching
// how a real feed degrades. Safe for the price service's concurrent fan-out.
type MockProvider struct {
	mu sync.Mutex
	// Prices maps symbol to the quote to return.
	Prices map[string]float64
	// Err, when set, is returned for every lookup.
	Err error
	// Calls counts lookups across all goroutines.
	Calls int
}

// NewMockProvider creates a mock provider with the given symbol quotes.
func NewMockProvider(prices map[string]float64) *MockProvider {
	return &MockProvider{Prices: prices}
}

// CurrentPrice implements market.Provider.
func (m *MockProvider) CurrentPrice(_ context.Context, asset model.Asset) (float64, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}

	price, ok := m.Prices[asset.Symbol]
	if !ok {
		return 0, fmt.Errorf("no quote for %s: %w", asset.Symbol, market.ErrPriceUnavailable)
	}
	return price, nil
}
