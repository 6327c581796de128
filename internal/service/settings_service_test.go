package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/repository"
	"github.com/stvowns/portfolio-tracker/internal/secret"
	"github.com/stvowns/portfolio-tracker/internal/testutil"
)

// Base64 of a fixed 32-byte value; a valid fernet key for tests only.
const testFernetKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

func TestSettings_PlainValueRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	box, err := secret.NewBox(testFernetKey)
	require.NoError(t, err)
	svc := testutil.NewTestSettingsService(t, db, box)

	require.NoError(t, svc.Set(context.Background(), "display_currency", "TRY"))

	value, err := svc.Get("display_currency")
	require.NoError(t, err)
	assert.Equal(t, "TRY", value)

	// Plain keys are stored as-is.
	raw, err := repository.NewSettingsRepository(db).Get("display_currency")
	require.NoError(t, err)
	assert.Equal(t, "TRY", raw)
}

func TestSettings_SecretValueEncryptedAtRest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	box, err := secret.NewBox(testFernetKey)
	require.NoError(t, err)
	svc := testutil.NewTestSettingsService(t, db, box)

	require.NoError(t, svc.Set(context.Background(), "market_api_key", "super-secret"))

	// The raw row must not contain the plaintext.
	raw, err := repository.NewSettingsRepository(db).Get("market_api_key")
	require.NoError(t, err)
	assert.NotEqual(t, "super-secret", raw)
	assert.NotContains(t, raw, "super-secret")

	// Reading through the service decrypts transparently.
	value, err := svc.Get("market_api_key")
	require.NoError(t, err)
	assert.Equal(t, "super-secret", value)
}

func TestSettings_SecretWithoutKeyConfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	box, err := secret.NewBox("")
	require.NoError(t, err)
	svc := testutil.NewTestSettingsService(t, db, box)

	err = svc.Set(context.Background(), "market_api_key", "super-secret")
	assert.ErrorIs(t, err, secret.ErrNoKey)
}

func TestSettings_UnknownKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	box, err := secret.NewBox(testFernetKey)
	require.NoError(t, err)
	svc := testutil.NewTestSettingsService(t, db, box)

	_, err = svc.Get("never-set")
	assert.ErrorIs(t, err, apperrors.ErrSettingNotFound)
}

func TestSettings_Overwrite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	box, err := secret.NewBox(testFernetKey)
	require.NoError(t, err)
	svc := testutil.NewTestSettingsService(t, db, box)

	require.NoError(t, svc.Set(context.Background(), "display_currency", "TRY"))
	require.NoError(t, svc.Set(context.Background(), "display_currency", "USD"))

	value, err := svc.Get("display_currency")
	require.NoError(t, err)
	assert.Equal(t, "USD", value)
}
