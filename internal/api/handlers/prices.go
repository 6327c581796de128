package handlers

import (
	"errors"
	"net/http"

	"github.com/stvowns/portfolio-tracker/internal/api/response"
	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/service"
)

// PriceHandler handles HTTP requests for market price endpoints.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// SyncPrices handles POST requests to refresh stored prices from the
// market-data provider. Per-asset failures are reported in the result body;
// the endpoint only fails when the asset list itself cannot be loaded.
//
// Endpoint: POST /api/prices/sync (API key protected)
// Response: 200 OK with PriceSyncResult
// Error: 500 Internal Server Error if the sync run cannot start
func (h *PriceHandler) SyncPrices(w http.ResponseWriter, r *http.Request) {
	result, err := h.priceService.SyncAll(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSyncPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// LatestPrices handles GET requests to retrieve the newest stored price per asset.
//
// Endpoint: GET /api/prices/latest
// Response: 200 OK with map of asset ID to price
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) LatestPrices(w http.ResponseWriter, _ *http.Request) {
	prices, err := h.priceService.LatestPrices()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve prices", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prices)
}

// GoldCoins handles GET requests to price the standard minted gold coin
// denominations off the current gram price.
//
// Endpoint: GET /api/prices/gold-coins
// Response: 200 OK with array of GoldCoinPrice
// Error: 404 Not Found if no gold asset has a stored price
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) GoldCoins(w http.ResponseWriter, _ *http.Request) {
	coins, err := h.priceService.GoldCoinPrices()
	if err != nil {
		if errors.Is(err, apperrors.ErrPriceNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPriceNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to price gold coins", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, coins)
}
