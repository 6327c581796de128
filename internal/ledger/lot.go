// Package ledger implements the position and lot accounting engine.
//
// The engine is pure: it consumes a chronological list of buy/sell
// transactions for one asset and derives open purchase lots, cost basis,
// and realized profit/loss using lot-tracking sale matching (FIFO by
// default). It performs no I/O and holds no state between calls; every
// computation is a function of its inputs.
package ledger

import "time"

// quantityEpsilon absorbs floating-point dust when comparing quantities.
// A lot whose remaining quantity falls below this threshold is considered
// fully consumed.
const quantityEpsilon = 1e-9

// Lot represents the unconsumed part of a single purchase.
// RemainingQuantity starts at OriginalQuantity and decreases as later
// sales consume it; the invariant 0 <= RemainingQuantity <= OriginalQuantity
// holds throughout a replay.
type Lot struct {
	SourceTransactionID string    `json:"sourceTransactionId"`
	OriginalQuantity    float64   `json:"originalQuantity"`
	UnitPrice           float64   `json:"unitPrice"`
	TotalAmount         float64   `json:"totalAmount"`
	Date                time.Time `json:"date"`
	RemainingQuantity   float64   `json:"remainingQuantity"`
}

// remainingCost returns the cost basis attributed to the unconsumed part of
// the lot. The share is proportional to the original purchase amount rather
// than RemainingQuantity * UnitPrice, so partial consumption under floating
// point stays consistent with the matched cost of what was sold.
func (l Lot) remainingCost() float64 {
	if l.OriginalQuantity <= 0 {
		return 0
	}
	return (l.RemainingQuantity / l.OriginalQuantity) * l.TotalAmount
}

// open reports whether the lot still has quantity available for sale.
func (l Lot) open() bool {
	return l.RemainingQuantity > quantityEpsilon
}

// LotOrder is a comparator determining the order in which open lots are
// consumed by a sale. It returns a negative number when a should be consumed
// before b, following the cmp convention.
//
// FIFO is the only strategy the application uses today; the comparator is
// the single extension point for alternatives such as highest-cost-first.
type LotOrder func(a, b Lot) int

// FIFO consumes the oldest lot first. Lots with equal dates keep their
// insertion order (sorting is stable), so replays are deterministic.
func FIFO(a, b Lot) int {
	return a.Date.Compare(b.Date)
}
