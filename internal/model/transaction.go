package model

import "time"

// TransactionType identifies the direction of a trade.
type TransactionType string

const (
	TransactionBuy  TransactionType = "BUY"
	TransactionSell TransactionType = "SELL"
)

// ValidTransactionTypes contains the allowed transaction type values.
var ValidTransactionTypes = map[TransactionType]bool{
	TransactionBuy:  true,
	TransactionSell: true,
}

// Transaction represents one immutable buy or sell trade of an asset.
// TotalAmount is stored redundantly and must equal Quantity * PricePerUnit;
// the invariant is enforced at entry, calculations trust the stored value.
// Corrections are recorded as new transactions, never as in-place updates.
type Transaction struct {
	ID           string          `json:"id"`
	AssetID      string          `json:"assetId"`
	Type         TransactionType `json:"type"`
	Quantity     float64         `json:"quantity"`
	PricePerUnit float64         `json:"pricePerUnit"`
	TotalAmount  float64         `json:"totalAmount"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt,omitempty"`
}

// TransactionResponse represents a transaction enriched with asset details
// for API responses.
type TransactionResponse struct {
	ID           string          `json:"id"`
	AssetID      string          `json:"assetId"`
	AssetName    string          `json:"assetName"`
	AssetType    AssetType       `json:"assetType"`
	Type         TransactionType `json:"type"`
	Quantity     float64         `json:"quantity"`
	PricePerUnit float64         `json:"pricePerUnit"`
	TotalAmount  float64         `json:"totalAmount"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes,omitempty"`
}
