package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/model"
	"github.com/stvowns/portfolio-tracker/internal/testutil"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("invalid test time %q: %v", value, err)
	}
	return parsed
}

func TestGetHolding(t *testing.T) {
	t.Run("valued at market price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		asset := testutil.NewAsset().Build(t, db)
		testutil.NewTransaction(asset.ID).WithQuantity(10).WithPrice(100).WithDate("2024-01-01").Build(t, db)
		testutil.NewTransaction(asset.ID).Sell().WithQuantity(5).WithPrice(120).WithDate("2024-02-01").Build(t, db)
		testutil.InsertPrice(t, db, asset.ID, 150)

		holding, err := svc.GetHolding(asset.ID)
		require.NoError(t, err)

		assert.Equal(t, 5.0, holding.NetQuantity)
		assert.Equal(t, 500.0, holding.TotalCost)
		assert.Equal(t, 100.0, holding.RealizedPnL)
		assert.Equal(t, 750.0, holding.CurrentValue)
		assert.Equal(t, 250.0, holding.UnrealizedPnL)
		assert.Equal(t, 350.0, holding.TotalPnL)
		assert.True(t, holding.PricedAtMarket)
		require.NotNil(t, holding.ProfitLossPercent)
		assert.Equal(t, 70.0, *holding.ProfitLossPercent)
	})

	t.Run("falls back to cost basis without a price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		asset := testutil.NewAsset().Build(t, db)
		testutil.NewTransaction(asset.ID).WithQuantity(10).WithPrice(100).WithDate("2024-01-01").Build(t, db)

		holding, err := svc.GetHolding(asset.ID)
		require.NoError(t, err)

		assert.Equal(t, 1000.0, holding.CurrentValue)
		assert.Equal(t, 0.0, holding.UnrealizedPnL)
		assert.False(t, holding.PricedAtMarket)
	})

	t.Run("newest stored price wins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		asset := testutil.NewAsset().Build(t, db)
		testutil.NewTransaction(asset.ID).WithQuantity(2).WithPrice(100).WithDate("2024-01-01").Build(t, db)

		testutil.InsertPriceAt(t, db, asset.ID, 110, mustTime(t, "2024-02-01T10:00:00Z"))
		testutil.InsertPriceAt(t, db, asset.ID, 130, mustTime(t, "2024-03-01T10:00:00Z"))

		holding, err := svc.GetHolding(asset.ID)
		require.NoError(t, err)
		assert.Equal(t, 260.0, holding.CurrentValue)
	})

	t.Run("cash is always worth its face value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		asset := testutil.NewAsset().WithType(model.AssetTypeCash).WithSymbol("").Build(t, db)
		testutil.NewTransaction(asset.ID).WithQuantity(5000).WithPrice(1).WithDate("2024-01-01").Build(t, db)
		// A stray price row must not affect an unpriceable asset.
		testutil.InsertPrice(t, db, asset.ID, 2)

		holding, err := svc.GetHolding(asset.ID)
		require.NoError(t, err)
		assert.Equal(t, 5000.0, holding.CurrentValue)
		assert.False(t, holding.PricedAtMarket)
	})

	t.Run("no transactions yields a zero holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		asset := testutil.NewAsset().Build(t, db)

		holding, err := svc.GetHolding(asset.ID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, holding.NetQuantity)
		assert.Equal(t, 0.0, holding.CurrentValue)
		assert.Nil(t, holding.ProfitLossPercent)
	})

	t.Run("unknown asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		_, err := svc.GetHolding(testutil.MakeID())
		assert.ErrorIs(t, err, apperrors.ErrAssetNotFound)
	})
}

func TestGetPortfolioHoldings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestHoldingService(t, db)

	gold := testutil.NewAsset().WithType(model.AssetTypeGold).Build(t, db)
	stock := testutil.NewAsset().Build(t, db)
	empty := testutil.NewAsset().Build(t, db)

	testutil.NewTransaction(gold.ID).WithQuantity(10).WithPrice(2000).WithDate("2024-01-01").Build(t, db)
	testutil.NewTransaction(stock.ID).WithQuantity(100).WithPrice(50).WithDate("2024-01-02").Build(t, db)
	testutil.InsertPrice(t, db, gold.ID, 2500)

	holdings, err := svc.GetPortfolioHoldings()
	require.NoError(t, err)
	require.Len(t, holdings, 3, "assets without transactions are listed too")

	byID := make(map[string]float64)
	for _, h := range holdings {
		byID[h.Asset.ID] = h.CurrentValue
	}
	assert.Equal(t, 25000.0, byID[gold.ID])
	assert.Equal(t, 5000.0, byID[stock.ID], "unpriced asset valued at cost")
	assert.Equal(t, 0.0, byID[empty.ID])
}

func TestGetSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestHoldingService(t, db)

	open := testutil.NewAsset().Build(t, db)
	closed := testutil.NewAsset().Build(t, db)

	testutil.NewTransaction(open.ID).WithQuantity(10).WithPrice(50).WithDate("2024-01-01").Build(t, db)
	testutil.InsertPrice(t, db, open.ID, 60)

	// Fully divested position: its realized gain must survive in the totals.
	testutil.NewTransaction(closed.ID).WithQuantity(4).WithPrice(100).WithDate("2024-01-01").Build(t, db)
	testutil.NewTransaction(closed.ID).Sell().WithQuantity(4).WithPrice(110).WithDate("2024-02-01").Build(t, db)

	summary, err := svc.GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 1, summary.HoldingCount)
	assert.Equal(t, 600.0, summary.TotalValue)
	assert.Equal(t, 500.0, summary.TotalCost)
	assert.Equal(t, 40.0, summary.TotalRealizedPnL)
	assert.Equal(t, 100.0, summary.TotalUnrealizedPnL)
	assert.Equal(t, 140.0, summary.TotalProfitLoss)
	assert.Equal(t, 28.0, summary.TotalProfitLossPercent)
}

func TestGetSummary_EmptyPortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestHoldingService(t, db)

	summary, err := svc.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, 0, summary.HoldingCount)
	assert.Equal(t, 0.0, summary.TotalValue)
	assert.Equal(t, 0.0, summary.TotalProfitLossPercent)
}

func TestGetPerformance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestHoldingService(t, db)
	asset := testutil.NewAsset().Build(t, db)
	testutil.NewTransaction(asset.ID).WithQuantity(10).WithPrice(100).WithDate("2024-01-01").Build(t, db)
	testutil.InsertPrice(t, db, asset.ID, 120)

	metrics, err := svc.GetPerformance()
	require.NoError(t, err)
	assert.Equal(t, 20.0, metrics.TotalReturn)
	assert.Equal(t, 0.0, metrics.MaxDrawdown)
}
