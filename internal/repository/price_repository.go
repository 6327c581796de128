package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stvowns/portfolio-tracker/internal/model"
)

// PriceRepository provides data access methods for the asset_price table.
// The newest row per asset is the "current market price"; holdings for assets
// with no rows at all are valued at cost by the service layer.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// InsertPrice stores a new price observation for an asset.
func (s *PriceRepository) InsertPrice(ctx context.Context, p *model.AssetPrice) error {
	query := `
		INSERT INTO asset_price (id, asset_id, price, fetched_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.AssetID, p.Price, p.FetchedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset price: %w", err)
	}
	return nil
}

// GetLatestPrice returns the most recent price for one asset.
// The boolean is false when no price has ever been recorded; that is a valid
// state, not an error.
func (s *PriceRepository) GetLatestPrice(assetID string) (float64, bool, error) {
	query := `
		SELECT price
		FROM asset_price
		WHERE asset_id = ?
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	var price float64
	err := s.db.QueryRow(query, assetID).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query asset_price table: %w", err)
	}

	return price, true, nil
}

// GetLatestPrices returns the most recent price per asset across all assets.
// Assets without any stored price are absent from the map.
func (s *PriceRepository) GetLatestPrices() (map[string]float64, error) {
	query := `
		SELECT p.asset_id, p.price
		FROM asset_price p
		JOIN (
			SELECT asset_id, MAX(fetched_at) AS max_fetched
			FROM asset_price
			GROUP BY asset_id
		) latest ON p.asset_id = latest.asset_id AND p.fetched_at = latest.max_fetched
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset_price table: %w", err)
	}
	defer rows.Close()

	prices := make(map[string]float64)
	for rows.Next() {
		var assetID string
		var price float64
		if err := rows.Scan(&assetID, &price); err != nil {
			return nil, fmt.Errorf("failed to scan asset_price table results: %w", err)
		}
		prices[assetID] = price
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset_price table: %w", err)
	}

	return prices, nil
}
