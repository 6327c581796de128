package ledger

import (
	"fmt"
	"math"
	"sort"
)

// saleResult carries the outcome of matching one sale against open lots.
type saleResult struct {
	costOfSold  float64
	proceeds    float64
	realizedPnL float64
}

// matchSale consumes open lots to cover a sale of qty units at pricePerUnit,
// ordered by the given comparator (oldest first for FIFO). The consumed
// slice of each lot carries a proportional share of the lot's original
// purchase amount as its cost basis.
//
// Availability is checked before any lot is touched: an oversell returns
// *OversellError and leaves every lot unmodified.
func matchSale(lots []*Lot, qty, pricePerUnit float64, order LotOrder) (saleResult, error) {
	if qty <= 0 {
		return saleResult{}, fmt.Errorf("sell %g units: %w", qty, ErrNonPositiveQuantity)
	}
	if pricePerUnit < 0 {
		return saleResult{}, fmt.Errorf("sell at %g: %w", pricePerUnit, ErrNegativePrice)
	}
	if order == nil {
		order = FIFO
	}

	var available float64
	for _, lot := range lots {
		if lot.open() {
			available += lot.RemainingQuantity
		}
	}
	if qty > available+quantityEpsilon {
		return saleResult{}, &OversellError{Requested: qty, Available: available}
	}

	ordered := make([]*Lot, len(lots))
	copy(ordered, lots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return order(*ordered[i], *ordered[j]) < 0
	})

	remaining := qty
	var res saleResult
	for _, lot := range ordered {
		if remaining <= quantityEpsilon {
			break
		}
		if !lot.open() {
			continue
		}

		consumed := math.Min(lot.RemainingQuantity, remaining)
		res.costOfSold += (consumed / lot.OriginalQuantity) * lot.TotalAmount
		res.proceeds += consumed * pricePerUnit

		lot.RemainingQuantity -= consumed
		if lot.RemainingQuantity < quantityEpsilon {
			lot.RemainingQuantity = 0
		}
		remaining -= consumed
	}

	res.realizedPnL = res.proceeds - res.costOfSold
	return res, nil
}

// LotSelection names a quantity to sell out of a specific lot, identified by
// the buy transaction that created it.
type LotSelection struct {
	SourceTransactionID string  `json:"sourceTransactionId"`
	Quantity            float64 `json:"quantity"`
}

// MatchSpecificLots sells chosen quantities out of named lots instead of
// consuming them in FIFO order. Precious-metal holders use this to sell a
// particular physical purchase. All selections are validated before any lot
// is mutated, so an invalid selection leaves the lots untouched.
//
// Returns the cost basis of what was sold, the sale proceeds, and the
// realized profit/loss of this single sale.
func MatchSpecificLots(lots []*Lot, selections []LotSelection, pricePerUnit float64) (costOfSold, proceeds, realizedPnL float64, err error) {
	if pricePerUnit < 0 {
		return 0, 0, 0, fmt.Errorf("sell at %g: %w", pricePerUnit, ErrNegativePrice)
	}

	byTransaction := make(map[string]*Lot, len(lots))
	for _, lot := range lots {
		byTransaction[lot.SourceTransactionID] = lot
	}

	// Selections may name the same lot more than once, so availability is
	// checked against the accumulated total per lot, not per selection.
	requested := make(map[string]float64, len(selections))
	for _, sel := range selections {
		if sel.Quantity <= 0 {
			return 0, 0, 0, fmt.Errorf("sell %g from lot %s: %w", sel.Quantity, sel.SourceTransactionID, ErrNonPositiveQuantity)
		}
		lot, ok := byTransaction[sel.SourceTransactionID]
		if !ok {
			return 0, 0, 0, fmt.Errorf("%w: %s", ErrLotNotFound, sel.SourceTransactionID)
		}
		requested[sel.SourceTransactionID] += sel.Quantity
		if requested[sel.SourceTransactionID] > lot.RemainingQuantity+quantityEpsilon {
			return 0, 0, 0, &OversellError{
				TransactionID: sel.SourceTransactionID,
				Requested:     requested[sel.SourceTransactionID],
				Available:     lot.RemainingQuantity,
			}
		}
	}

	for _, sel := range selections {
		lot := byTransaction[sel.SourceTransactionID]
		consumed := math.Min(sel.Quantity, lot.RemainingQuantity)

		costOfSold += (consumed / lot.OriginalQuantity) * lot.TotalAmount
		proceeds += consumed * pricePerUnit

		lot.RemainingQuantity -= consumed
		if lot.RemainingQuantity < quantityEpsilon {
			lot.RemainingQuantity = 0
		}
	}

	return costOfSold, proceeds, proceeds - costOfSold, nil
}
