package ledger

// PortfolioSummary aggregates all of a user's valued holdings into
// portfolio-level totals.
//
// Only open positions (net quantity > 0) contribute value and cost, but
// realized profit/loss is accumulated across every holding, so gains locked
// in by fully sold assets are not lost. TotalProfitLossPercent is 0, not
// nil, when there is no cost basis; the asymmetry with the per-holding
// convention is deliberate and documented.
type PortfolioSummary struct {
	TotalValue             float64 `json:"totalValue"`
	TotalCost              float64 `json:"totalCost"`
	TotalRealizedPnL       float64 `json:"totalRealizedPL"`
	TotalUnrealizedPnL     float64 `json:"totalUnrealizedPL"`
	TotalProfitLoss        float64 `json:"totalProfitLoss"`
	TotalProfitLossPercent float64 `json:"totalProfitLossPercent"`
	HoldingCount           int     `json:"holdingCount"`
}

// Summarize folds valued holdings into a portfolio summary.
func Summarize(holdings []ValuedHolding) PortfolioSummary {
	var s PortfolioSummary

	for _, h := range holdings {
		// Realized gains of closed positions stay in the totals even though
		// the positions themselves are excluded below.
		s.TotalRealizedPnL += h.RealizedPnL

		if h.NetQuantity <= 0 {
			continue
		}
		s.TotalValue += h.CurrentValue
		s.TotalUnrealizedPnL += h.UnrealizedPnL
		if h.TotalCost > 0 {
			s.TotalCost += h.TotalCost
		}
		s.HoldingCount++
	}

	s.TotalProfitLoss = s.TotalRealizedPnL + s.TotalUnrealizedPnL
	if s.TotalCost > 0 {
		s.TotalProfitLossPercent = (s.TotalProfitLoss / s.TotalCost) * 100
	}
	return s
}
