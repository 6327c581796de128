package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/stvowns/portfolio-tracker/internal/model"
)

// Book is the result of replaying one asset's full transaction history.
// OpenLots contains only lots with remaining quantity; the contribution of
// fully consumed lots survives in the accumulated realized figures.
type Book struct {
	AssetID     string  `json:"assetId"`
	OpenLots    []Lot   `json:"openLots"`
	NetQuantity float64 `json:"netQuantity"`
	TotalCost   float64 `json:"totalCost"`   // Cost basis of the open lots
	RealizedPnL float64 `json:"realizedPnL"` // Accumulated over all sales in the history
	CostOfSold  float64 `json:"costOfSold"`  // Cost basis matched to all sales
	Proceeds    float64 `json:"proceeds"`    // Revenue of all sales
}

// Replay folds an asset's transactions, in any input order, into a Book.
//
// Transactions are first sorted by date ascending; equal dates fall back to
// CreatedAt, and full ties keep their input order (the sort is stable), so
// the same inputs always produce the same book. Buys open new lots, sells
// consume open lots oldest-first (FIFO).
//
// A sell exceeding the open quantity at its point in the history fails with
// *OversellError carrying the asset, the offending transaction, and the
// quantity that was actually available.
func Replay(assetID string, txs []model.Transaction) (Book, error) {
	ordered := make([]model.Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	book := Book{AssetID: assetID}
	var lots []*Lot

	for _, tx := range ordered {
		if tx.Quantity <= 0 {
			return Book{}, fmt.Errorf("transaction %s: quantity %g: %w", tx.ID, tx.Quantity, ErrNonPositiveQuantity)
		}
		if tx.PricePerUnit < 0 {
			return Book{}, fmt.Errorf("transaction %s: price %g: %w", tx.ID, tx.PricePerUnit, ErrNegativePrice)
		}

		switch tx.Type {
		case model.TransactionBuy:
			lots = append(lots, &Lot{
				SourceTransactionID: tx.ID,
				OriginalQuantity:    tx.Quantity,
				UnitPrice:           tx.PricePerUnit,
				TotalAmount:         tx.TotalAmount,
				Date:                tx.Date,
				RemainingQuantity:   tx.Quantity,
			})
		case model.TransactionSell:
			res, err := matchSale(lots, tx.Quantity, tx.PricePerUnit, FIFO)
			if err != nil {
				var oversell *OversellError
				if errors.As(err, &oversell) {
					oversell.AssetID = assetID
					oversell.TransactionID = tx.ID
				}
				return Book{}, err
			}
			book.CostOfSold += res.costOfSold
			book.Proceeds += res.proceeds
			book.RealizedPnL += res.realizedPnL
		default:
			return Book{}, fmt.Errorf("transaction %s: %w: %q", tx.ID, ErrUnknownTransactionType, tx.Type)
		}
	}

	for _, lot := range lots {
		if !lot.open() {
			continue
		}
		book.OpenLots = append(book.OpenLots, *lot)
		book.NetQuantity += lot.RemainingQuantity
		book.TotalCost += lot.remainingCost()
	}

	return book, nil
}
