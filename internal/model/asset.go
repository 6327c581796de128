package model

import "time"

// AssetType identifies the asset class of a tracked asset.
// The class determines which market-data provider is used for pricing.
type AssetType string

const (
	AssetTypeGold     AssetType = "GOLD"
	AssetTypeSilver   AssetType = "SILVER"
	AssetTypeStock    AssetType = "STOCK"
	AssetTypeFund     AssetType = "FUND"
	AssetTypeCrypto   AssetType = "CRYPTO"
	AssetTypeEurobond AssetType = "EUROBOND"
	AssetTypeCash     AssetType = "CASH"
)

// ValidAssetTypes contains the allowed asset type values.
var ValidAssetTypes = map[AssetType]bool{
	AssetTypeGold:     true,
	AssetTypeSilver:   true,
	AssetTypeStock:    true,
	AssetTypeFund:     true,
	AssetTypeCrypto:   true,
	AssetTypeEurobond: true,
	AssetTypeCash:     true,
}

// Asset represents a tradable asset tracked by the application.
// Holdings and profit/loss for an asset are derived from its transactions,
// never stored on the asset itself.
type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      AssetType `json:"type"`
	Symbol    string    `json:"symbol,omitempty"`   // Provider ticker, e.g. THYAO.IS, BTC-USD, GC=F
	Currency  string    `json:"currency"`           // Currency transactions are recorded in
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Priceable reports whether the asset can be valued against a live market price.
// Cash is always worth its face value and assets without a symbol cannot be
// looked up at any provider.
func (a Asset) Priceable() bool {
	return a.Type != AssetTypeCash && a.Symbol != ""
}
