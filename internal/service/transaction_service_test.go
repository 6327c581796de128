package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stvowns/portfolio-tracker/internal/api/request"
	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/ledger"
	"github.com/stvowns/portfolio-tracker/internal/model"
	"github.com/stvowns/portfolio-tracker/internal/testutil"
)

func TestCreateTransaction_Buy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	asset := testutil.NewAsset().Build(t, db)

	tx, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
		AssetID:      asset.ID,
		Date:         "2024-01-15",
		Type:         "BUY",
		Quantity:     10,
		PricePerUnit: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, model.TransactionBuy, tx.Type)
	assert.Equal(t, 1000.0, tx.TotalAmount, "total should be computed from quantity * price")

	stored, err := svc.GetTransaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.ID, stored.AssetID)
	assert.Equal(t, 10.0, stored.Quantity)
}

func TestCreateTransaction_AmountMismatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	asset := testutil.NewAsset().Build(t, db)

	_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
		AssetID:      asset.ID,
		Date:         "2024-01-15",
		Type:         "BUY",
		Quantity:     10,
		PricePerUnit: 100,
		TotalAmount:  900, // should be 1000
	})
	assert.ErrorIs(t, err, apperrors.ErrAmountMismatch)
}

func TestCreateTransaction_AssetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)

	_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
		AssetID:      testutil.MakeID(),
		Date:         "2024-01-15",
		Type:         "BUY",
		Quantity:     1,
		PricePerUnit: 100,
	})
	assert.ErrorIs(t, err, apperrors.ErrAssetNotFound)
}

func TestCreateTransaction_SellCoveredByLots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	asset := testutil.NewAsset().Build(t, db)
	testutil.NewTransaction(asset.ID).WithQuantity(10).WithPrice(100).WithDate("2024-01-01").Build(t, db)

	tx, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
		AssetID:      asset.ID,
		Date:         "2024-02-01",
		Type:         "SELL",
		Quantity:     5,
		PricePerUnit: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, model.TransactionSell, tx.Type)
	assert.Equal(t, 600.0, tx.TotalAmount)
}

func TestCreateTransaction_OversellRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	asset := testutil.NewAsset().Build(t, db)
	testutil.NewTransaction(asset.ID).WithQuantity(5).WithPrice(100).WithDate("2024-01-01").Build(t, db)

	_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
		AssetID:      asset.ID,
		Date:         "2024-02-01",
		Type:         "SELL",
		Quantity:     6,
		PricePerUnit: 120,
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientHoldings)

	var oversell *ledger.OversellError
	require.ErrorAs(t, err, &oversell)
	assert.Equal(t, 6.0, oversell.Requested)
	assert.Equal(t, 5.0, oversell.Available)

	// The rejected sell must leave no trace in the database.
	history, err := svc.GetTransactionsByAsset(asset.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCreateTransaction_SellDatedBeforeBuyRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	asset := testutil.NewAsset().Build(t, db)
	testutil.NewTransaction(asset.ID).WithQuantity(10).WithPrice(100).WithDate("2024-03-01").Build(t, db)

	// Replay is date-ordered, so a sale dated before the only buy has
	// nothing to consume even though the holding exists today.
	_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
		AssetID:      asset.ID,
		Date:         "2024-01-01",
		Type:         "SELL",
		Quantity:     5,
		PricePerUnit: 120,
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientHoldings)
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("deletes a transaction the history can spare", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.NewAsset().Build(t, db)
		testutil.NewTransaction(asset.ID).WithQuantity(10).WithPrice(100).WithDate("2024-01-01").Build(t, db)
		sell := testutil.NewTransaction(asset.ID).Sell().WithQuantity(5).WithPrice(120).WithDate("2024-02-01").Build(t, db)

		require.NoError(t, svc.DeleteTransaction(context.Background(), sell.ID))

		_, err := svc.GetTransaction(sell.ID)
		assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
	})

	t.Run("rejects deleting a buy that later sells consumed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		asset := testutil.NewAsset().Build(t, db)
		buy := testutil.NewTransaction(asset.ID).WithQuantity(10).WithPrice(100).WithDate("2024-01-01").Build(t, db)
		testutil.NewTransaction(asset.ID).Sell().WithQuantity(5).WithPrice(120).WithDate("2024-02-01").Build(t, db)

		err := svc.DeleteTransaction(context.Background(), buy.ID)
		require.ErrorIs(t, err, apperrors.ErrInsufficientHoldings)

		// Nothing was deleted.
		_, err = svc.GetTransaction(buy.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		err := svc.DeleteTransaction(context.Background(), testutil.MakeID())
		assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
	})
}

func TestGetTransactions_EnrichedWithAssetDetails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	asset := testutil.NewAsset().WithName("Gram Gold X1").WithType(model.AssetTypeGold).Build(t, db)
	testutil.NewTransaction(asset.ID).WithQuantity(2).WithPrice(2500).WithDate("2024-01-01").Build(t, db)

	transactions, err := svc.GetTransactions()
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Gram Gold X1", transactions[0].AssetName)
	assert.Equal(t, model.AssetTypeGold, transactions[0].AssetType)
}
