package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/market"
	"github.com/stvowns/portfolio-tracker/internal/model"
	"github.com/stvowns/portfolio-tracker/internal/repository"
)

// maxConcurrentFetches bounds the parallel provider lookups during a sync
// run, keeping the run fast without hammering the quote API.
const maxConcurrentFetches = 4

// GoldCoinPrice is a minted coin denomination priced off the current gram price.
type GoldCoinPrice struct {
	market.CoinType
	Price float64 `json:"price"`
}

// PriceService refreshes and serves market prices. Price data is an
// enrichment, never a dependency: a failed lookup is recorded per asset and
// the affected holdings fall back to cost-basis valuation.
type PriceService struct {
	assetRepo *repository.AssetRepository
	priceRepo *repository.PriceRepository
	provider  market.Provider
}

// NewPriceService creates a new PriceService with the provided dependencies.
func NewPriceService(
	assetRepo *repository.AssetRepository,
	priceRepo *repository.PriceRepository,
	provider market.Provider,
) *PriceService {
	return &PriceService{
		assetRepo: assetRepo,
		priceRepo: priceRepo,
		provider:  provider,
	}
}

// SyncAll refreshes the stored price of every priceable asset.
//
// Lookups run concurrently with a bounded fan-out. A failed lookup or store
// is reported in the result for that asset and never aborts the run; cash
// assets and assets without a symbol are counted as skipped.
func (s *PriceService) SyncAll(ctx context.Context) (model.PriceSyncResult, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return model.PriceSyncResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSyncPrices, err)
	}

	result := model.PriceSyncResult{
		Updated: []model.PriceSyncUpdate{},
		Errors:  []model.PriceSyncError{},
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, asset := range assets {
		if !asset.Priceable() {
			result.Skipped++
			continue
		}

		asset := asset
		g.Go(func() error {
			price, err := s.provider.CurrentPrice(ctx, asset)
			if err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, model.PriceSyncError{
					AssetID: asset.ID,
					Symbol:  asset.Symbol,
					Error:   err.Error(),
				})
				mu.Unlock()
				return nil
			}

			err = s.priceRepo.InsertPrice(ctx, &model.AssetPrice{
				ID:        uuid.New().String(),
				AssetID:   asset.ID,
				Price:     price,
				FetchedAt: time.Now(),
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, model.PriceSyncError{
					AssetID: asset.ID,
					Symbol:  asset.Symbol,
					Error:   err.Error(),
				})
				return nil
			}
			result.Updated = append(result.Updated, model.PriceSyncUpdate{
				AssetID: asset.ID,
				Symbol:  asset.Symbol,
				Price:   price,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.PriceSyncResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSyncPrices, err)
	}

	return result, nil
}

// LatestPrices returns the most recent stored price per asset.
func (s *PriceService) LatestPrices() (map[string]float64, error) {
	return s.priceRepo.GetLatestPrices()
}

// GoldCoinPrices prices the standard minted coin denominations off the
// current gram gold price. The gram price comes from the newest stored price
// of the first gold asset that has one; without any priced gold asset the
// lookup fails with apperrors.ErrPriceNotFound.
func (s *PriceService) GoldCoinPrices() ([]GoldCoinPrice, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return nil, err
	}

	var gramPrice float64
	found := false
	for _, asset := range assets {
		if asset.Type != model.AssetTypeGold {
			continue
		}
		price, ok, err := s.priceRepo.GetLatestPrice(asset.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			gramPrice = price
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("no priced gold asset: %w", apperrors.ErrPriceNotFound)
	}

	coins := make([]GoldCoinPrice, len(market.GoldCoinTypes))
	for i, coin := range market.GoldCoinTypes {
		coins[i] = GoldCoinPrice{
			CoinType: coin,
			Price:    round(market.CoinPrice(gramPrice, coin)),
		}
	}
	return coins, nil
}
