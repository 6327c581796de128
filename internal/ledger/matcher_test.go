package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openLot(txID string, qty, unitPrice float64, on time.Time) *Lot {
	return &Lot{
		SourceTransactionID: txID,
		OriginalQuantity:    qty,
		UnitPrice:           unitPrice,
		TotalAmount:         qty * unitPrice,
		Date:                on,
		RemainingQuantity:   qty,
	}
}

func TestMatchSale(t *testing.T) {
	t.Run("consumes oldest lot first", func(t *testing.T) {
		lots := []*Lot{
			openLot("new", 1, 30, date(2024, time.March, 1)),
			openLot("old", 1, 10, date(2024, time.January, 1)),
			openLot("mid", 1, 20, date(2024, time.February, 1)),
		}

		res, err := matchSale(lots, 2, 25, FIFO)
		require.NoError(t, err)

		assert.InDelta(t, 30, res.costOfSold, 1e-9)
		assert.InDelta(t, 50, res.proceeds, 1e-9)
		assert.InDelta(t, 20, res.realizedPnL, 1e-9)
		assert.Zero(t, lots[1].RemainingQuantity, "oldest fully consumed")
		assert.Zero(t, lots[2].RemainingQuantity, "middle fully consumed")
		assert.InDelta(t, 1, lots[0].RemainingQuantity, 1e-9, "newest untouched")
	})

	t.Run("partial consumption uses proportional cost basis", func(t *testing.T) {
		lots := []*Lot{openLot("t1", 8, 5, date(2024, time.January, 1))}

		res, err := matchSale(lots, 2, 9, FIFO)
		require.NoError(t, err)

		assert.InDelta(t, 10, res.costOfSold, 1e-9) // (2/8) * 40
		assert.InDelta(t, 6, lots[0].RemainingQuantity, 1e-9)
	})

	t.Run("oversell leaves lots untouched", func(t *testing.T) {
		lots := []*Lot{
			openLot("t1", 2, 10, date(2024, time.January, 1)),
			openLot("t2", 3, 12, date(2024, time.February, 1)),
		}

		_, err := matchSale(lots, 6, 15, FIFO)

		var oversell *OversellError
		require.ErrorAs(t, err, &oversell)
		assert.InDelta(t, 5, oversell.Available, 1e-9)
		assert.InDelta(t, 2, lots[0].RemainingQuantity, 1e-9, "no partial mutation on the rejected path")
		assert.InDelta(t, 3, lots[1].RemainingQuantity, 1e-9)
	})

	t.Run("custom lot order overrides FIFO", func(t *testing.T) {
		lots := []*Lot{
			openLot("cheap", 1, 10, date(2024, time.January, 1)),
			openLot("dear", 1, 30, date(2024, time.February, 1)),
		}
		highestCostFirst := func(a, b Lot) int {
			switch {
			case a.UnitPrice > b.UnitPrice:
				return -1
			case a.UnitPrice < b.UnitPrice:
				return 1
			default:
				return 0
			}
		}

		res, err := matchSale(lots, 1, 25, highestCostFirst)
		require.NoError(t, err)

		assert.InDelta(t, 30, res.costOfSold, 1e-9)
		assert.Zero(t, lots[1].RemainingQuantity)
	})
}

func TestMatchSpecificLots(t *testing.T) {
	t.Run("sells out of the chosen lot", func(t *testing.T) {
		lots := []*Lot{
			openLot("t1", 2, 1500, date(2024, time.January, 1)),
			openLot("t2", 2, 1800, date(2024, time.February, 1)),
		}

		cost, proceeds, realized, err := MatchSpecificLots(lots, []LotSelection{
			{SourceTransactionID: "t2", Quantity: 1},
		}, 2000)
		require.NoError(t, err)

		assert.InDelta(t, 1800, cost, 1e-9)
		assert.InDelta(t, 2000, proceeds, 1e-9)
		assert.InDelta(t, 200, realized, 1e-9)
		assert.InDelta(t, 2, lots[0].RemainingQuantity, 1e-9, "FIFO-older lot must not be touched")
		assert.InDelta(t, 1, lots[1].RemainingQuantity, 1e-9)
	})

	t.Run("spanning multiple selections", func(t *testing.T) {
		lots := []*Lot{
			openLot("t1", 4, 100, date(2024, time.January, 1)),
			openLot("t2", 4, 200, date(2024, time.February, 1)),
		}

		cost, proceeds, realized, err := MatchSpecificLots(lots, []LotSelection{
			{SourceTransactionID: "t1", Quantity: 2},
			{SourceTransactionID: "t2", Quantity: 1},
		}, 250)
		require.NoError(t, err)

		assert.InDelta(t, 400, cost, 1e-9)
		assert.InDelta(t, 750, proceeds, 1e-9)
		assert.InDelta(t, 350, realized, 1e-9)
	})

	t.Run("unknown lot rejected before any mutation", func(t *testing.T) {
		lots := []*Lot{openLot("t1", 4, 100, date(2024, time.January, 1))}

		_, _, _, err := MatchSpecificLots(lots, []LotSelection{
			{SourceTransactionID: "t1", Quantity: 1},
			{SourceTransactionID: "missing", Quantity: 1},
		}, 150)

		assert.ErrorIs(t, err, ErrLotNotFound)
		assert.InDelta(t, 4, lots[0].RemainingQuantity, 1e-9)
	})

	t.Run("repeated selections of one lot are summed before the oversell check", func(t *testing.T) {
		lots := []*Lot{openLot("t1", 5, 100, date(2024, time.January, 1))}

		_, _, _, err := MatchSpecificLots(lots, []LotSelection{
			{SourceTransactionID: "t1", Quantity: 3},
			{SourceTransactionID: "t1", Quantity: 3},
		}, 150)

		var oversell *OversellError
		require.ErrorAs(t, err, &oversell)
		assert.Equal(t, "t1", oversell.TransactionID)
		assert.InDelta(t, 6, oversell.Requested, 1e-9, "the combined request is what oversold")
		assert.InDelta(t, 5, oversell.Available, 1e-9)
		assert.InDelta(t, 5, lots[0].RemainingQuantity, 1e-9, "no partial mutation on the rejected path")
	})

	t.Run("repeated selections within the remainder succeed", func(t *testing.T) {
		lots := []*Lot{openLot("t1", 5, 100, date(2024, time.January, 1))}

		cost, proceeds, realized, err := MatchSpecificLots(lots, []LotSelection{
			{SourceTransactionID: "t1", Quantity: 2},
			{SourceTransactionID: "t1", Quantity: 2},
		}, 150)
		require.NoError(t, err)

		assert.InDelta(t, 400, cost, 1e-9)
		assert.InDelta(t, 600, proceeds, 1e-9)
		assert.InDelta(t, 200, realized, 1e-9)
		assert.InDelta(t, 1, lots[0].RemainingQuantity, 1e-9)
	})

	t.Run("selection exceeding lot remainder is an oversell", func(t *testing.T) {
		lots := []*Lot{openLot("t1", 2, 100, date(2024, time.January, 1))}

		_, _, _, err := MatchSpecificLots(lots, []LotSelection{
			{SourceTransactionID: "t1", Quantity: 3},
		}, 150)

		var oversell *OversellError
		require.ErrorAs(t, err, &oversell)
		assert.Equal(t, "t1", oversell.TransactionID)
		assert.InDelta(t, 2, lots[0].RemainingQuantity, 1e-9)
	})
}
