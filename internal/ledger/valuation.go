package ledger

// ValuedHolding combines a holding with an externally supplied market price.
//
// ProfitLossPercent is nil, not zero, when there is no cost basis to compare
// against; callers must treat the two differently. PricedAtMarket reports
// whether CurrentValue reflects a live price or fell back to cost basis, so
// the UI can signal staleness.
type ValuedHolding struct {
	Holding
	CurrentValue      float64  `json:"currentValue"`
	UnrealizedPnL     float64  `json:"unrealizedProfitLoss"`
	TotalPnL          float64  `json:"totalProfitLoss"`
	ProfitLossPercent *float64 `json:"profitLossPercent"`
	PricedAtMarket    bool     `json:"pricedAtMarket"`
}

// Valuate combines a holding with the current market price, if one is
// available. A nil price is a degraded but defined state, not an error:
// price feeds are external and unreliable, so the holding is valued at cost
// with no unrealized gain or loss.
func Valuate(h Holding, currentPrice *float64) ValuedHolding {
	v := ValuedHolding{Holding: h}

	switch {
	case h.NetQuantity <= 0:
		// Fully divested or never held.
	case currentPrice != nil:
		v.CurrentValue = *currentPrice * h.NetQuantity
		v.UnrealizedPnL = v.CurrentValue - h.TotalCost
		v.PricedAtMarket = true
	default:
		v.CurrentValue = h.TotalCost
	}

	v.TotalPnL = h.RealizedPnL + v.UnrealizedPnL
	if h.TotalCost > 0 {
		pct := (v.TotalPnL / h.TotalCost) * 100
		v.ProfitLossPercent = &pct
	}
	return v
}
