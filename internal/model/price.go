package model

import "time"

// AssetPrice represents a market price observation for an asset.
// The most recent row per asset is treated as the current market price;
// absence of any row is a valid state (the asset is then valued at cost).
type AssetPrice struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"assetId"`
	Price     float64   `json:"price"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// PriceSyncResult reports the outcome of one price synchronization run.
// Failed lookups are reported per asset and never abort the run: a missing
// price only degrades valuation to cost basis.
type PriceSyncResult struct {
	Updated []PriceSyncUpdate `json:"updated"`
	Errors  []PriceSyncError  `json:"errors"`
	Skipped int               `json:"skipped"` // Assets without a priceable symbol
}

// PriceSyncUpdate describes one successfully refreshed asset price.
type PriceSyncUpdate struct {
	AssetID string  `json:"assetId"`
	Symbol  string  `json:"symbol"`
	Price   float64 `json:"price"`
}

// PriceSyncError describes one failed price lookup.
type PriceSyncError struct {
	AssetID string `json:"assetId"`
	Symbol  string `json:"symbol"`
	Error   string `json:"error"`
}
