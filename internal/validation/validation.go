// Package validation checks API request payloads before they reach the
// service layer. Field problems are collected into an Error so a client sees
// everything wrong with a request at once.
package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUUID indicates an identifier that is not a valid UUID.
var ErrInvalidUUID = fmt.Errorf("invalid UUID format")

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}
