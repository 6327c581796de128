package ledger

import (
	"math"
	"time"

	"github.com/stvowns/portfolio-tracker/internal/model"
)

// PerformanceMetrics summarizes portfolio returns over standard periods.
// Period returns are approximations from net invested amounts within the
// window; a proper time-weighted return would need daily valuation history,
// which the engine deliberately does not own.
type PerformanceMetrics struct {
	DailyReturn      float64 `json:"dailyReturn"`
	WeeklyReturn     float64 `json:"weeklyReturn"`
	MonthlyReturn    float64 `json:"monthlyReturn"`
	YearlyReturn     float64 `json:"yearlyReturn"`
	TotalReturn      float64 `json:"totalReturn"`
	AnnualizedReturn float64 `json:"annualizedReturn"`
	MaxDrawdown      float64 `json:"maxDrawdown"`
}

// Performance computes portfolio return metrics from the full transaction
// history and the current valued holdings. Zero transactions yield all-zero
// metrics.
func Performance(txs []model.Transaction, holdings []ValuedHolding, now time.Time) PerformanceMetrics {
	if len(txs) == 0 {
		return PerformanceMetrics{}
	}

	var currentValue, totalCost float64
	for _, h := range holdings {
		if h.NetQuantity > 0 {
			currentValue += h.CurrentValue
			totalCost += h.TotalCost
		}
	}

	var totalReturn float64
	if totalCost > 0 {
		totalReturn = ((currentValue - totalCost) / totalCost) * 100
	}

	firstDate := txs[0].Date
	for _, tx := range txs[1:] {
		if tx.Date.Before(firstDate) {
			firstDate = tx.Date
		}
	}
	daysSinceStart := math.Max(1, now.Sub(firstDate).Hours()/24)

	return PerformanceMetrics{
		DailyReturn:      periodReturn(txs, now.AddDate(0, 0, -1), currentValue),
		WeeklyReturn:     periodReturn(txs, now.AddDate(0, 0, -7), currentValue),
		MonthlyReturn:    periodReturn(txs, now.AddDate(0, -1, 0), currentValue),
		YearlyReturn:     periodReturn(txs, now.AddDate(-1, 0, 0), currentValue),
		TotalReturn:      totalReturn,
		AnnualizedReturn: totalReturn * (365 / daysSinceStart),
		MaxDrawdown:      math.Min(0, totalReturn),
	}
}

// periodReturn computes the simple return over net amounts invested since
// periodStart. Returns 0 when nothing was invested in the window.
func periodReturn(txs []model.Transaction, periodStart time.Time, currentValue float64) float64 {
	var netInvestment float64
	for _, tx := range txs {
		if tx.Date.Before(periodStart) {
			continue
		}
		switch tx.Type {
		case model.TransactionBuy:
			netInvestment += tx.TotalAmount
		case model.TransactionSell:
			netInvestment -= tx.TotalAmount
		}
	}
	if netInvestment <= 0 {
		return 0
	}
	return ((currentValue - netInvestment) / netInvestment) * 100
}
