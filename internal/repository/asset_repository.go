package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/model"
)

// AssetRepository provides data access methods for the asset table.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// GetAssets retrieves all assets ordered by creation time.
func (s *AssetRepository) GetAssets() ([]model.Asset, error) {
	query := `
		SELECT id, name, type, symbol, currency, created_at
		FROM asset
		ORDER BY created_at ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAsset retrieves a single asset by its ID.
// Returns apperrors.ErrAssetNotFound if no row exists.
func (s *AssetRepository) GetAsset(assetID string) (model.Asset, error) {
	query := `
		SELECT id, name, type, symbol, currency, created_at
		FROM asset
		WHERE id = ?
	`

	row := s.db.QueryRow(query, assetID)
	asset, err := scanAsset(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, err
	}

	return asset, nil
}

// InsertAsset stores a new asset.
func (s *AssetRepository) InsertAsset(ctx context.Context, asset *model.Asset) error {
	query := `
		INSERT INTO asset (id, name, type, symbol, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		asset.ID, asset.Name, string(asset.Type), asset.Symbol, asset.Currency,
		asset.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// UpdateAsset updates the mutable fields of an asset.
// Returns apperrors.ErrAssetNotFound if no row was affected.
func (s *AssetRepository) UpdateAsset(ctx context.Context, asset *model.Asset) error {
	query := `
		UPDATE asset
		SET name = ?, type = ?, symbol = ?, currency = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		asset.Name, string(asset.Type), asset.Symbol, asset.Currency, asset.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// DeleteAsset removes an asset; transactions and prices cascade at the schema level.
// Returns apperrors.ErrAssetNotFound if no row was affected.
func (s *AssetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM asset WHERE id = ?`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// scanAsset reads one asset row through the given scan function.
func scanAsset(scan func(...any) error) (model.Asset, error) {
	var a model.Asset
	var typeStr, createdAtStr string
	var symbol sql.NullString

	err := scan(&a.ID, &a.Name, &typeStr, &symbol, &a.Currency, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Asset{}, err
		}
		return model.Asset{}, fmt.Errorf("failed to scan asset table results: %w", err)
	}

	a.Type = model.AssetType(typeStr)
	if symbol.Valid {
		a.Symbol = symbol.String
	}
	a.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Asset{}, err
	}

	return a, nil
}
