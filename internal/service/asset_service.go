package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stvowns/portfolio-tracker/internal/api/request"
	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/model"
	"github.com/stvowns/portfolio-tracker/internal/repository"
)

// AssetService handles asset-related business logic operations.
type AssetService struct {
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
}

// NewAssetService creates a new AssetService with the provided repository dependencies.
func NewAssetService(
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
) *AssetService {
	return &AssetService{
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
	}
}

// GetAssets retrieves all tracked assets.
func (s *AssetService) GetAssets() ([]model.Asset, error) {
	return s.assetRepo.GetAssets()
}

// GetAsset retrieves a single asset by its ID.
func (s *AssetService) GetAsset(assetID string) (model.Asset, error) {
	return s.assetRepo.GetAsset(assetID)
}

// CreateAsset stores a new asset from a validated request.
func (s *AssetService) CreateAsset(ctx context.Context, req request.CreateAssetRequest) (*model.Asset, error) {
	asset := &model.Asset{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Type:      model.AssetType(req.Type),
		Symbol:    req.Symbol,
		Currency:  req.Currency,
		CreatedAt: time.Now(),
	}

	if err := s.assetRepo.InsertAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return asset, nil
}

// UpdateAsset applies the non-nil fields of the request to an existing asset.
func (s *AssetService) UpdateAsset(ctx context.Context, assetID string, req request.UpdateAssetRequest) (model.Asset, error) {
	asset, err := s.assetRepo.GetAsset(assetID)
	if err != nil {
		return model.Asset{}, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Type != nil {
		asset.Type = model.AssetType(*req.Type)
	}
	if req.Symbol != nil {
		asset.Symbol = *req.Symbol
	}
	if req.Currency != nil {
		asset.Currency = *req.Currency
	}

	if err := s.assetRepo.UpdateAsset(ctx, &asset); err != nil {
		return model.Asset{}, err
	}

	return asset, nil
}

// DeleteAsset removes an asset. Assets with recorded transactions are
// protected unless force is set; a forced delete cascades to the asset's
// transactions and prices at the schema level.
func (s *AssetService) DeleteAsset(ctx context.Context, assetID string, force bool) error {
	if !force {
		count, err := s.transactionRepo.CountByAsset(assetID)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrAssetInUse
		}
	}

	return s.assetRepo.DeleteAsset(ctx, assetID)
}
