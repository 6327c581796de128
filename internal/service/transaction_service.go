package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stvowns/portfolio-tracker/internal/api/request"
	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/ledger"
	"github.com/stvowns/portfolio-tracker/internal/model"
	"github.com/stvowns/portfolio-tracker/internal/repository"
)

// amountTolerance absorbs client-side float formatting when comparing a
// submitted total against quantity * price per unit.
const amountTolerance = 0.01

// TransactionService handles transaction-related business logic operations.
// Sell transactions are checked against the asset's replayed lot history
// before they are stored, so the transaction table never contains a history
// that oversells an asset.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	assetRepo       *repository.AssetRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	assetRepo *repository.AssetRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
	}
}

// GetTransactions retrieves all transactions enriched with asset details.
func (s *TransactionService) GetTransactions() ([]model.TransactionResponse, error) {
	return s.transactionRepo.GetAllTransactions()
}

// GetTransactionsByAsset retrieves all transactions for one asset in ledger order.
func (s *TransactionService) GetTransactionsByAsset(assetID string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactionsByAsset(assetID)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(transactionID)
}

// CreateTransaction validates and stores a new buy or sell transaction.
//
// The stored total must equal quantity * price per unit; a zero total is
// filled in from those fields, a non-zero total outside the tolerance fails
// with apperrors.ErrAmountMismatch. A sell is replayed against the asset's
// existing history first and rejected with apperrors.ErrInsufficientHoldings
// (wrapping the ledger's *OversellError) when open lots cannot cover it, so
// a rejected sell leaves no trace in the database.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction date %q: %w", req.Date, err)
	}

	if _, err := s.assetRepo.GetAsset(req.AssetID); err != nil {
		return nil, err
	}

	total := req.TotalAmount
	if total == 0 {
		total = req.Quantity * req.PricePerUnit
	} else if math.Abs(total-req.Quantity*req.PricePerUnit) > amountTolerance {
		return nil, fmt.Errorf("%w: got %g, expected %g",
			apperrors.ErrAmountMismatch, total, req.Quantity*req.PricePerUnit)
	}

	transaction := &model.Transaction{
		ID:           uuid.New().String(),
		AssetID:      req.AssetID,
		Type:         model.TransactionType(req.Type),
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
		TotalAmount:  total,
		Date:         transactionDate,
		Notes:        req.Notes,
		CreatedAt:    time.Now(),
	}

	if transaction.Type == model.TransactionSell {
		if err := s.checkSellCovered(transaction); err != nil {
			return nil, err
		}
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction, but only when the remaining
// history still replays cleanly. Deleting a buy that later sells consumed
// would leave the asset's ledger overselling itself, so such deletes are
// rejected the same way an uncovered sell is.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	transaction, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return err
	}

	history, err := s.transactionRepo.GetTransactionsByAsset(transaction.AssetID)
	if err != nil {
		return err
	}

	remaining := make([]model.Transaction, 0, len(history)-1)
	for _, tx := range history {
		if tx.ID != transactionID {
			remaining = append(remaining, tx)
		}
	}

	if _, err := ledger.Replay(transaction.AssetID, remaining); err != nil {
		var oversell *ledger.OversellError
		if errors.As(err, &oversell) {
			return fmt.Errorf("%w: %w", apperrors.ErrInsufficientHoldings, err)
		}
		return err
	}

	return s.transactionRepo.DeleteTransaction(ctx, transactionID)
}

// checkSellCovered replays the asset's stored history plus the candidate sell
// and translates an oversell into the service-level error. Nothing is written
// on the rejected path.
func (s *TransactionService) checkSellCovered(candidate *model.Transaction) error {
	history, err := s.transactionRepo.GetTransactionsByAsset(candidate.AssetID)
	if err != nil {
		return err
	}

	if _, err := ledger.Replay(candidate.AssetID, append(history, *candidate)); err != nil {
		var oversell *ledger.OversellError
		if errors.As(err, &oversell) {
			return fmt.Errorf("%w: %w", apperrors.ErrInsufficientHoldings, err)
		}
		return err
	}
	return nil
}
