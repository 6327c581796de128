package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactionsByAsset retrieves all transactions for one asset, sorted by
// date then creation time ascending. The ledger replays this snapshot; the
// ordering here is the insertion order the engine's tie-breaking relies on.
func (s *TransactionRepository) GetTransactionsByAsset(assetID string) ([]model.Transaction, error) {
	query := `
		SELECT id, asset_id, type, quantity, price_per_unit, total_amount, date, notes, created_at
		FROM "transaction"
		WHERE asset_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.Query(query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransactionsGroupedByAsset retrieves every transaction, grouped by asset ID.
// Grouping here saves one query per asset when computing portfolio-wide holdings.
func (s *TransactionRepository) GetTransactionsGroupedByAsset() (map[string][]model.Transaction, error) {
	query := `
		SELECT id, asset_id, type, quantity, price_per_unit, total_amount, date, notes, created_at
		FROM "transaction"
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	byAsset := make(map[string][]model.Transaction)
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		byAsset[t.AssetID] = append(byAsset[t.AssetID], t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return byAsset, nil
}

// GetAllTransactions retrieves all transactions enriched with asset details.
func (s *TransactionRepository) GetAllTransactions() ([]model.TransactionResponse, error) {
	query := `
		SELECT t.id, t.asset_id, a.name, a.type, t.type, t.quantity, t.price_per_unit,
		       t.total_amount, t.date, t.notes
		FROM "transaction" t
		JOIN asset a ON t.asset_id = a.id
		ORDER BY t.date ASC, t.created_at ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	responses := []model.TransactionResponse{}
	for rows.Next() {
		var r model.TransactionResponse
		var assetTypeStr, typeStr, dateStr string
		var notes sql.NullString

		err := rows.Scan(
			&r.ID, &r.AssetID, &r.AssetName, &assetTypeStr, &typeStr,
			&r.Quantity, &r.PricePerUnit, &r.TotalAmount, &dateStr, &notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		r.AssetType = model.AssetType(assetTypeStr)
		r.Type = model.TransactionType(typeStr)
		if notes.Valid {
			r.Notes = notes.String
		}
		r.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}

		responses = append(responses, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return responses, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound if no row exists.
func (s *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, asset_id, type, quantity, price_per_unit, total_amount, date, notes, created_at
		FROM "transaction"
		WHERE id = ?
	`

	row := s.db.QueryRow(query, transactionID)
	t, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// InsertTransaction stores a new transaction.
func (s *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, asset_id, type, quantity, price_per_unit, total_amount, date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.AssetID, string(t.Type), t.Quantity, t.PricePerUnit, t.TotalAmount,
		t.Date.UTC().Format("2006-01-02"), t.Notes,
		t.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction.
// Returns apperrors.ErrTransactionNotFound if no row was affected.
func (s *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// CountByAsset returns the number of transactions referencing an asset.
func (s *TransactionRepository) CountByAsset(assetID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM "transaction" WHERE asset_id = ?`, assetID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// scanTransaction reads one transaction row through the given scan function.
func scanTransaction(scan func(...any) error) (model.Transaction, error) {
	var t model.Transaction
	var typeStr, dateStr, createdAtStr string
	var notes sql.NullString

	err := scan(
		&t.ID, &t.AssetID, &typeStr, &t.Quantity, &t.PricePerUnit,
		&t.TotalAmount, &dateStr, &notes, &createdAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Transaction{}, err
		}
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Type = model.TransactionType(typeStr)
	if notes.Valid {
		t.Notes = notes.String
	}
	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Transaction{}, err
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}
