package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stvowns/portfolio-tracker/internal/api/request"
	"github.com/stvowns/portfolio-tracker/internal/api/response"
	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/ledger"
	"github.com/stvowns/portfolio-tracker/internal/service"
	"github.com/stvowns/portfolio-tracker/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// AllTransactions handles GET requests to retrieve all transactions across all assets.
// Returns transaction details enriched with asset names and types.
//
// Endpoint: GET /api/transactions
// Response: 200 OK with array of TransactionResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, _ *http.Request) {
	transactions, err := h.transactionService.GetTransactions()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// TransactionsPerAsset handles GET requests to retrieve all transactions for one asset.
// Transactions are returned in ledger order: date ascending, then creation time.
//
// Endpoint: GET /api/assets/{uuid}/transactions
// Response: 200 OK with array of Transaction
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) TransactionsPerAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	transactions, err := h.transactionService.GetTransactionsByAsset(assetID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transactions/{uuid}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to create a new transaction.
// Validates the request body and creates a transaction record in the database.
// A sell that is not covered by the asset's open lots is rejected with the
// requested and available quantities in the error details.
//
// Endpoint: POST /api/transactions
// Request Body: CreateTransactionRequest (assetId, date, type, quantity, pricePerUnit, totalAmount, notes)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails, the total does not match, or the sale is uncovered
// Error: 404 Not Found if the asset does not exist
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrAmountMismatch) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrAmountMismatch.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrInsufficientHoldings) {
			respondOversell(w, err)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
// A delete that would leave the asset's remaining history overselling itself
// is rejected.
//
// Endpoint: DELETE /api/transactions/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
//	or the remaining history would be uncovered
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	err := h.transactionService.DeleteTransaction(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrInsufficientHoldings) {
			respondOversell(w, err)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// respondOversell renders an uncovered sale as a 400 with the exact
// quantities, so clients can show the user what is actually sellable.
func respondOversell(w http.ResponseWriter, err error) {
	var oversell *ledger.OversellError
	if errors.As(err, &oversell) {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientHoldings.Error(), map[string]any{
			"assetId":   oversell.AssetID,
			"requested": oversell.Requested,
			"available": oversell.Available,
			"shortfall": oversell.Shortfall(),
		})
		return
	}
	response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientHoldings.Error(), err.Error())
}
