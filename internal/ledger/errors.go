package ledger

import (
	"errors"
	"fmt"
)

// Engine input errors. The data-entry layer validates quantities and prices
// before persisting; the engine re-checks during replay so a corrupted
// history never produces silently wrong numbers.
var (
	// ErrNonPositiveQuantity indicates a transaction with a zero or negative quantity.
	ErrNonPositiveQuantity = errors.New("transaction quantity must be positive")

	// ErrNegativePrice indicates a transaction with a negative price per unit.
	ErrNegativePrice = errors.New("price per unit cannot be negative")

	// ErrUnknownTransactionType indicates a transaction type the engine does not handle.
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrLotNotFound indicates a specific-lot sale referenced a lot that does not exist.
	ErrLotNotFound = errors.New("lot not found")
)

// OversellError reports a sale whose quantity exceeds the total remaining
// quantity of all open lots at that point in the replay. The computation that
// encountered it is aborted; no lot state is mutated on this path.
type OversellError struct {
	AssetID       string
	TransactionID string
	Requested     float64
	Available     float64
}

func (e *OversellError) Error() string {
	return fmt.Sprintf("oversell: asset %s: requested %g but only %g available",
		e.AssetID, e.Requested, e.Available)
}

// Shortfall returns how much of the requested quantity could not be matched.
func (e *OversellError) Shortfall() float64 {
	return e.Requested - e.Available
}
