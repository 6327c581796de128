// Package api wires the HTTP surface: router, handlers, middleware and the
// request/response envelope packages.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stvowns/portfolio-tracker/internal/api/handlers"
	custommiddleware "github.com/stvowns/portfolio-tracker/internal/api/middleware"
	"github.com/stvowns/portfolio-tracker/internal/config"
	"github.com/stvowns/portfolio-tracker/internal/service"
)

// Services bundles the service dependencies the router hands to handlers.
type Services struct {
	System      *service.SystemService
	Asset       *service.AssetService
	Transaction *service.TransactionService
	Holding     *service.HoldingService
	Price       *service.PriceService
	Settings    *service.SettingsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	requireAPIKey := custommiddleware.RequireAPIKey(cfg.Security.InternalAPIKey)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/assets", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svc.Asset)
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			portfolioHandler := handlers.NewPortfolioHandler(svc.Holding)

			r.Get("/", assetHandler.ListAssets)
			r.Post("/", assetHandler.CreateAsset)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.GetAsset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
				r.Get("/transactions", transactionHandler.TransactionsPerAsset)
				r.Get("/holding", portfolioHandler.AssetHolding)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)

			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Holding)
			r.Get("/holdings", portfolioHandler.Holdings)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/performance", portfolioHandler.Performance)
		})

		r.Route("/prices", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(svc.Price)
			r.Get("/latest", priceHandler.LatestPrices)
			r.Get("/gold-coins", priceHandler.GoldCoins)
			r.With(requireAPIKey).Post("/sync", priceHandler.SyncPrices)
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(svc.Settings)
			r.Use(requireAPIKey)
			r.Put("/", settingsHandler.SetSetting)
			r.Get("/{key}", settingsHandler.GetSetting)
		})
	})

	return r
}
