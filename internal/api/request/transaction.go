package request

type CreateTransactionRequest struct {
	AssetID      string  `json:"assetId"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit"`
	TotalAmount  float64 `json:"totalAmount"` // Optional; computed from quantity * pricePerUnit when zero
	Notes        string  `json:"notes"`
}
