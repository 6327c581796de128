package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stvowns/portfolio-tracker/internal/market"
	"github.com/stvowns/portfolio-tracker/internal/repository"
	"github.com/stvowns/portfolio-tracker/internal/secret"
	"github.com/stvowns/portfolio-tracker/internal/service"
)

func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()

	return service.NewAssetService(
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewAssetRepository(db),
	)
}

func NewTestHoldingService(t *testing.T, db *sql.DB) *service.HoldingService {
	t.Helper()

	return service.NewHoldingService(
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewPriceRepository(db),
	)
}

// NewTestPriceService creates a PriceService backed by the given provider,
// usually a *MockProvider, so no test touches a real quote API.
func NewTestPriceService(t *testing.T, db *sql.DB, provider market.Provider) *service.PriceService {
	t.Helper()

	return service.NewPriceService(
		repository.NewAssetRepository(db),
		repository.NewPriceRepository(db),
		provider,
	)
}

func NewTestSettingsService(t *testing.T, db *sql.DB, box *secret.Box) *service.SettingsService {
	t.Helper()

	return service.NewSettingsService(repository.NewSettingsRepository(db), box)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("THYAO")
//	// Returns: "THYAO1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeAssetName generates a unique asset name for testing.
//
// Example usage:
//
//	name := testutil.MakeAssetName("Gram Gold")
//	// Returns: "Gram Gold ABC123"
func MakeAssetName(base string) string {
	if base == "" {
		base = "Asset"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
