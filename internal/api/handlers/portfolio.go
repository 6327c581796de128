package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stvowns/portfolio-tracker/internal/api/response"
	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/service"
)

// PortfolioHandler handles HTTP requests for derived portfolio views:
// per-asset holdings, portfolio totals and performance metrics. Everything
// it serves is recomputed from transactions on each request.
type PortfolioHandler struct {
	holdingService *service.HoldingService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(holdingService *service.HoldingService) *PortfolioHandler {
	return &PortfolioHandler{
		holdingService: holdingService,
	}
}

// Holdings handles GET requests to retrieve the valued position of every asset.
//
// Endpoint: GET /api/portfolio/holdings
// Response: 200 OK with array of AssetHolding
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, _ *http.Request) {
	holdings, err := h.holdingService.GetPortfolioHoldings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// AssetHolding handles GET requests to retrieve one asset's valued position.
//
// Endpoint: GET /api/assets/{uuid}/holding
// Response: 200 OK with AssetHolding
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) AssetHolding(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	holding, err := h.holdingService.GetHolding(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holding)
}

// Summary handles GET requests to retrieve portfolio-level totals.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.holdingService.GetSummary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Performance handles GET requests to retrieve portfolio return metrics.
//
// Endpoint: GET /api/portfolio/performance
// Response: 200 OK with PerformanceMetrics
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Performance(w http.ResponseWriter, _ *http.Request) {
	metrics, err := h.holdingService.GetPerformance()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, metrics)
}
