package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stvowns/portfolio-tracker/internal/model"
)

// Rows are always inserted with explicit RFC3339 created_at values; the
// schema default CURRENT_TIMESTAMP writes a format the repositories do not
// parse.

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults
//	asset := testutil.NewAsset().Build(t, db)
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    WithName("Gram Gold").
//	    WithType(model.AssetTypeGold).
//	    WithSymbol("GC=F").
//	    Build(t, db)
type AssetBuilder struct {
	ID        string
	Name      string
	Type      model.AssetType
	Symbol    string
	Currency  string
	CreatedAt time.Time
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:        MakeID(),
		Name:      MakeAssetName("Test Asset"),
		Type:      model.AssetTypeStock,
		Symbol:    MakeSymbol("TEST"),
		Currency:  "TRY",
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithType sets the asset type.
func (b *AssetBuilder) WithType(assetType model.AssetType) *AssetBuilder {
	b.Type = assetType
	return b
}

// WithSymbol sets the provider ticker. An empty symbol makes the asset
// unpriceable.
func (b *AssetBuilder) WithSymbol(symbol string) *AssetBuilder {
	b.Symbol = symbol
	return b
}

// WithCurrency sets the recording currency.
func (b *AssetBuilder) WithCurrency(currency string) *AssetBuilder {
	b.Currency = currency
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	query := `
		INSERT INTO asset (id, name, type, symbol, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.Name, string(b.Type), b.Symbol, b.Currency,
		b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:        b.ID,
		Name:      b.Name,
		Type:      b.Type,
		Symbol:    b.Symbol,
		Currency:  b.Currency,
		CreatedAt: b.CreatedAt,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	tx := testutil.NewTransaction(asset.ID).
//	    Sell().
//	    WithQuantity(5).
//	    WithPrice(24).
//	    WithDate("2024-03-01").
//	    Build(t, db)
type TransactionBuilder struct {
	ID           string
	AssetID      string
	Type         model.TransactionType
	Quantity     float64
	PricePerUnit float64
	TotalAmount  float64
	Date         string
	Notes        string
	CreatedAt    time.Time
}

// NewTransaction creates a TransactionBuilder for a buy of 10 units at 100.
func NewTransaction(assetID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:           MakeID(),
		AssetID:      assetID,
		Type:         model.TransactionBuy,
		Quantity:     10,
		PricePerUnit: 100,
		Date:         "2024-01-01",
		CreatedAt:    time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// Sell marks the transaction as a sale.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionSell
	return b
}

// WithQuantity sets the traded quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the per-unit price.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.PricePerUnit = price
	return b
}

// WithTotalAmount overrides the stored total; the default is quantity * price.
func (b *TransactionBuilder) WithTotalAmount(total float64) *TransactionBuilder {
	b.TotalAmount = total
	return b
}

// WithDate sets the trade date in YYYY-MM-DD format.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// WithCreatedAt sets the creation timestamp, the ledger's tie-breaker for
// same-day transactions.
func (b *TransactionBuilder) WithCreatedAt(createdAt time.Time) *TransactionBuilder {
	b.CreatedAt = createdAt
	return b
}

// WithNotes sets a free-text note.
func (b *TransactionBuilder) WithNotes(notes string) *TransactionBuilder {
	b.Notes = notes
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	total := b.TotalAmount
	if total == 0 {
		total = b.Quantity * b.PricePerUnit
	}

	query := `
		INSERT INTO "transaction" (id, asset_id, type, quantity, price_per_unit, total_amount, date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.AssetID, string(b.Type), b.Quantity, b.PricePerUnit, total,
		b.Date, b.Notes, b.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test transaction date %q: %v", b.Date, err)
	}

	return model.Transaction{
		ID:           b.ID,
		AssetID:      b.AssetID,
		Type:         b.Type,
		Quantity:     b.Quantity,
		PricePerUnit: b.PricePerUnit,
		TotalAmount:  total,
		Date:         date,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
	}
}

// InsertPrice stores a price observation for an asset, fetched now.
func InsertPrice(t *testing.T, db *sql.DB, assetID string, price float64) {
	t.Helper()

	InsertPriceAt(t, db, assetID, price, time.Now().UTC())
}

// InsertPriceAt stores a price observation with an explicit fetch time, for
// tests that care about which observation is newest.
func InsertPriceAt(t *testing.T, db *sql.DB, assetID string, price float64, fetchedAt time.Time) {
	t.Helper()

	query := `
		INSERT INTO asset_price (id, asset_id, price, fetched_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, MakeID(), assetID, price, fetchedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))
	if err != nil {
		t.Fatalf("Failed to create test price: %v", err)
	}
}
