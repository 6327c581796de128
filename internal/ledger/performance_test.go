package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stvowns/portfolio-tracker/internal/model"
)

func TestPerformance(t *testing.T) {
	now := date(2024, time.July, 1)

	t.Run("no transactions", func(t *testing.T) {
		m := Performance(nil, nil, now)
		assert.Zero(t, m)
	})

	t.Run("total and annualized return", func(t *testing.T) {
		txs := []model.Transaction{
			buy("t1", 10, 100, now.AddDate(0, 0, -365)),
		}
		holdings := []ValuedHolding{
			Valuate(Holding{AssetID: "a", NetQuantity: 10, TotalCost: 1000}, price(110)),
		}

		m := Performance(txs, holdings, now)

		assert.InDelta(t, 10, m.TotalReturn, 1e-9)
		assert.InDelta(t, 10, m.AnnualizedReturn, 0.1)
		assert.Zero(t, m.MaxDrawdown)
	})

	t.Run("losing portfolio reports drawdown", func(t *testing.T) {
		txs := []model.Transaction{
			buy("t1", 10, 100, now.AddDate(0, -2, 0)),
		}
		holdings := []ValuedHolding{
			Valuate(Holding{AssetID: "a", NetQuantity: 10, TotalCost: 1000}, price(80)),
		}

		m := Performance(txs, holdings, now)

		assert.InDelta(t, -20, m.TotalReturn, 1e-9)
		assert.InDelta(t, -20, m.MaxDrawdown, 1e-9)
	})

	t.Run("period returns only count window investments", func(t *testing.T) {
		txs := []model.Transaction{
			buy("old", 10, 100, now.AddDate(0, -6, 0)),
			buy("recent", 5, 100, now.AddDate(0, 0, -3)),
		}
		holdings := []ValuedHolding{
			Valuate(Holding{AssetID: "a", NetQuantity: 15, TotalCost: 1500}, price(110)),
		}

		m := Performance(txs, holdings, now)

		// Only the recent 500 counts for the weekly window.
		assert.InDelta(t, 230, m.WeeklyReturn, 1e-9) // (1650-500)/500*100
		assert.Zero(t, m.DailyReturn, "nothing invested in the last day")
	})
}
