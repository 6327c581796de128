package validation

import (
	"fmt"
	"strings"

	"github.com/stvowns/portfolio-tracker/internal/api/request"
	"github.com/stvowns/portfolio-tracker/internal/model"
)

// ValidateCreateAsset validates an asset creation request.
//
// Required fields:
//   - name: Must be non-empty
//   - type: Must be one of the known asset types
//   - currency: Must be non-empty
//
// The symbol is optional; assets without one are simply never priced.
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !model.ValidAssetTypes[model.AssetType(req.Type)] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if strings.TrimSpace(req.Currency) == "" {
		errors["currency"] = "currency is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateAsset validates an asset update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Type != nil && !model.ValidAssetTypes[model.AssetType(*req.Type)] {
		errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
	}
	if req.Currency != nil && strings.TrimSpace(*req.Currency) == "" {
		errors["currency"] = "currency cannot be empty"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
