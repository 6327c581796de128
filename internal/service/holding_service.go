package service

import (
	"fmt"
	"time"

	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/ledger"
	"github.com/stvowns/portfolio-tracker/internal/model"
	"github.com/stvowns/portfolio-tracker/internal/repository"
)

// AssetHolding pairs an asset with its valued position for API responses.
type AssetHolding struct {
	Asset model.Asset `json:"asset"`
	ledger.ValuedHolding
}

// HoldingService derives positions, valuations and portfolio aggregates from
// stored transactions. Holdings are never persisted; every request replays
// the relevant transaction history through the ledger.
type HoldingService struct {
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	priceRepo       *repository.PriceRepository
}

// NewHoldingService creates a new HoldingService with the provided repository dependencies.
func NewHoldingService(
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	priceRepo *repository.PriceRepository,
) *HoldingService {
	return &HoldingService{
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		priceRepo:       priceRepo,
	}
}

// GetHolding computes the current valued position of one asset.
// An asset with no transactions yields a zero-valued holding, not an error.
func (s *HoldingService) GetHolding(assetID string) (AssetHolding, error) {
	asset, err := s.assetRepo.GetAsset(assetID)
	if err != nil {
		return AssetHolding{}, err
	}

	transactions, err := s.transactionRepo.GetTransactionsByAsset(assetID)
	if err != nil {
		return AssetHolding{}, err
	}

	holding, err := ledger.AggregateHolding(assetID, transactions)
	if err != nil {
		return AssetHolding{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeHoldings, err)
	}

	var price *float64
	if asset.Priceable() {
		latest, ok, err := s.priceRepo.GetLatestPrice(assetID)
		if err != nil {
			return AssetHolding{}, err
		}
		if ok {
			price = &latest
		}
	}

	return AssetHolding{Asset: asset, ValuedHolding: roundValued(ledger.Valuate(holding, price))}, nil
}

// GetPortfolioHoldings computes the valued position of every tracked asset.
// Assets without transactions appear with zero positions so the portfolio
// view always lists everything the user tracks.
func (s *HoldingService) GetPortfolioHoldings() ([]AssetHolding, error) {
	holdings, _, err := s.valuedHoldings()
	return holdings, err
}

// GetSummary folds every valued holding into portfolio-level totals.
func (s *HoldingService) GetSummary() (ledger.PortfolioSummary, error) {
	holdings, _, err := s.valuedHoldings()
	if err != nil {
		return ledger.PortfolioSummary{}, err
	}

	valued := make([]ledger.ValuedHolding, len(holdings))
	for i, h := range holdings {
		valued[i] = h.ValuedHolding
	}

	summary := ledger.Summarize(valued)
	summary.TotalValue = round(summary.TotalValue)
	summary.TotalCost = round(summary.TotalCost)
	summary.TotalRealizedPnL = round(summary.TotalRealizedPnL)
	summary.TotalUnrealizedPnL = round(summary.TotalUnrealizedPnL)
	summary.TotalProfitLoss = round(summary.TotalProfitLoss)
	summary.TotalProfitLossPercent = round(summary.TotalProfitLossPercent)
	return summary, nil
}

// GetPerformance computes portfolio return metrics over standard periods.
func (s *HoldingService) GetPerformance() (ledger.PerformanceMetrics, error) {
	holdings, byAsset, err := s.valuedHoldings()
	if err != nil {
		return ledger.PerformanceMetrics{}, err
	}

	var transactions []model.Transaction
	for _, txs := range byAsset {
		transactions = append(transactions, txs...)
	}

	valued := make([]ledger.ValuedHolding, len(holdings))
	for i, h := range holdings {
		valued[i] = h.ValuedHolding
	}

	metrics := ledger.Performance(transactions, valued, time.Now())
	metrics.DailyReturn = round(metrics.DailyReturn)
	metrics.WeeklyReturn = round(metrics.WeeklyReturn)
	metrics.MonthlyReturn = round(metrics.MonthlyReturn)
	metrics.YearlyReturn = round(metrics.YearlyReturn)
	metrics.TotalReturn = round(metrics.TotalReturn)
	metrics.AnnualizedReturn = round(metrics.AnnualizedReturn)
	metrics.MaxDrawdown = round(metrics.MaxDrawdown)
	return metrics, nil
}

// valuedHoldings replays every asset's history against the latest stored
// prices. Transactions and prices are each loaded in one query; the grouped
// transactions are returned as well so callers needing the flat history do
// not hit the database twice.
func (s *HoldingService) valuedHoldings() ([]AssetHolding, map[string][]model.Transaction, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return nil, nil, err
	}

	byAsset, err := s.transactionRepo.GetTransactionsGroupedByAsset()
	if err != nil {
		return nil, nil, err
	}

	prices, err := s.priceRepo.GetLatestPrices()
	if err != nil {
		return nil, nil, err
	}

	holdings := make([]AssetHolding, 0, len(assets))
	for _, asset := range assets {
		holding, err := ledger.AggregateHolding(asset.ID, byAsset[asset.ID])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: asset %s: %w", apperrors.ErrFailedToComputeHoldings, asset.ID, err)
		}

		var price *float64
		if latest, ok := prices[asset.ID]; ok && asset.Priceable() {
			price = &latest
		}

		holdings = append(holdings, AssetHolding{
			Asset:         asset,
			ValuedHolding: roundValued(ledger.Valuate(holding, price)),
		})
	}

	return holdings, byAsset, nil
}

// roundValued rounds the monetary fields of a valued holding for API output.
// Quantities and per-unit prices keep their full precision; fractional gram
// and share counts must not be distorted by display rounding.
func roundValued(v ledger.ValuedHolding) ledger.ValuedHolding {
	v.TotalCost = round(v.TotalCost)
	v.CurrentValue = round(v.CurrentValue)
	v.UnrealizedPnL = round(v.UnrealizedPnL)
	v.TotalPnL = round(v.TotalPnL)
	v.RealizedPnL = round(v.RealizedPnL)
	v.ProfitLossPercent = roundPtr(v.ProfitLossPercent)
	return v
}
