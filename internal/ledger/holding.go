package ledger

import "github.com/stvowns/portfolio-tracker/internal/model"

// Holding is the derived position of one asset: the fold of its complete
// transaction history. It is a view, recomputed on demand, never persisted
// as mutable state.
type Holding struct {
	AssetID      string  `json:"assetId"`
	NetQuantity  float64 `json:"netQuantity"`
	TotalCost    float64 `json:"totalCost"`
	AveragePrice float64 `json:"averagePrice"`
	RealizedPnL  float64 `json:"realizedProfitLoss"`
	OpenLots     []Lot   `json:"lots,omitempty"`
}

// AggregateHolding replays the asset's full transaction history into a
// holding summary. An asset with no transactions yields a zero-valued
// holding and no error. AveragePrice is 0 when nothing is held; a division
// by zero is never surfaced.
func AggregateHolding(assetID string, txs []model.Transaction) (Holding, error) {
	book, err := Replay(assetID, txs)
	if err != nil {
		return Holding{}, err
	}

	h := Holding{
		AssetID:     assetID,
		NetQuantity: book.NetQuantity,
		TotalCost:   book.TotalCost,
		RealizedPnL: book.RealizedPnL,
		OpenLots:    book.OpenLots,
	}
	if h.NetQuantity > 0 {
		h.AveragePrice = h.TotalCost / h.NetQuantity
	}
	return h, nil
}
