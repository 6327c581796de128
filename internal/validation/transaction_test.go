package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stvowns/portfolio-tracker/internal/api/request"
	"github.com/stvowns/portfolio-tracker/internal/validation"
)

func validCreate() request.CreateTransactionRequest {
	return request.CreateTransactionRequest{
		AssetID:      "550e8400-e29b-41d4-a716-446655440000",
		Date:         "2024-01-15",
		Type:         "BUY",
		Quantity:     10,
		PricePerUnit: 100,
	}
}

func TestValidateCreateTransaction(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, validation.ValidateCreateTransaction(validCreate()))
	})

	t.Run("total amount left to the service", func(t *testing.T) {
		req := validCreate()
		req.TotalAmount = 0
		assert.NoError(t, validation.ValidateCreateTransaction(req))
	})

	t.Run("matching total amount", func(t *testing.T) {
		req := validCreate()
		req.TotalAmount = 1000
		assert.NoError(t, validation.ValidateCreateTransaction(req))
	})

	t.Run("invalid asset id", func(t *testing.T) {
		req := validCreate()
		req.AssetID = "not-a-uuid"
		assert.ErrorIs(t, validation.ValidateCreateTransaction(req), validation.ErrInvalidUUID)
	})

	tests := []struct {
		name   string
		mutate func(*request.CreateTransactionRequest)
		field  string
	}{
		{"missing date", func(r *request.CreateTransactionRequest) { r.Date = "" }, "date"},
		{"malformed date", func(r *request.CreateTransactionRequest) { r.Date = "15/01/2024" }, "date"},
		{"missing type", func(r *request.CreateTransactionRequest) { r.Type = "" }, "type"},
		{"unknown type", func(r *request.CreateTransactionRequest) { r.Type = "HOLD" }, "type"},
		{"lowercase type", func(r *request.CreateTransactionRequest) { r.Type = "buy" }, "type"},
		{"zero quantity", func(r *request.CreateTransactionRequest) { r.Quantity = 0 }, "quantity"},
		{"negative quantity", func(r *request.CreateTransactionRequest) { r.Quantity = -5 }, "quantity"},
		{"negative price", func(r *request.CreateTransactionRequest) { r.PricePerUnit = -1 }, "pricePerUnit"},
		{"mismatched total", func(r *request.CreateTransactionRequest) { r.TotalAmount = 900 }, "totalAmount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)

			err := validation.ValidateCreateTransaction(req)
			require.Error(t, err)

			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}
