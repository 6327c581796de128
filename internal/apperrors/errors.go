package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPriceNotFound indicates no stored price for the given asset.
	ErrPriceNotFound = errors.New("asset price not found")

	// ErrSettingNotFound indicates that a settings key has not been configured.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInsufficientHoldings indicates a sell transaction cannot be completed
	// because the open lots do not cover the requested quantity. The wrapped
	// ledger.OversellError carries the exact shortfall.
	ErrInsufficientHoldings = errors.New("insufficient holdings for sale")

	// ErrAmountMismatch indicates a transaction whose stored total does not
	// equal quantity * price per unit.
	ErrAmountMismatch = errors.New("total amount does not match quantity * price")

	// ErrAssetInUse indicates that an asset cannot be deleted while transactions reference it.
	ErrAssetInUse = errors.New("asset has transactions")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. They indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveAssets       = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset        = errors.New("failed to retrieve asset")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToComputeHoldings      = errors.New("failed to compute holdings")
	ErrFailedToComputeSummary       = errors.New("failed to compute portfolio summary")
	ErrFailedToSyncPrices           = errors.New("failed to sync prices")
	ErrFailedToStoreSetting         = errors.New("failed to store setting")
)
