package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/stvowns/portfolio-tracker/internal/api/request"
	"github.com/stvowns/portfolio-tracker/internal/model"
)

// totalAmountTolerance absorbs float formatting differences between a
// client-submitted total and quantity * pricePerUnit.
const totalAmountTolerance = 0.01

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - assetId: Must be a valid UUID
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: BUY, SELL
//   - quantity: Must be positive
//   - pricePerUnit: Must be non-negative
//
// A non-zero totalAmount must agree with quantity * pricePerUnit within the
// tolerance; a zero totalAmount is filled in by the service layer.
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	if err := ValidateUUID(req.AssetID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !model.ValidTransactionTypes[model.TransactionType(req.Type)] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.PricePerUnit < 0 {
		errors["pricePerUnit"] = "pricePerUnit cannot be negative"
	}

	if req.TotalAmount != 0 && math.Abs(req.TotalAmount-req.Quantity*req.PricePerUnit) > totalAmountTolerance {
		errors["totalAmount"] = fmt.Sprintf(
			"totalAmount %g does not match quantity * pricePerUnit %g",
			req.TotalAmount, req.Quantity*req.PricePerUnit,
		)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
