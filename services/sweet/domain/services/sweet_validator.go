// Package services contains stateless domain services for the sweet bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/services/sweet/domain/models"
)

// ValidateName enforces business rules for SweetName beyond the structural
// constraints enforced by the SweetName constructor (length 1–255).
//
// Business rules:
//   - No leading or trailing whitespace
//   - No control characters (Unicode category Cc)
//   - Must not be only whitespace characters
func ValidateName(name models.SweetName) error {
	s := name.String()

	if s != strings.TrimSpace(s) {
		return fmt.Errorf("sweet name must not have leading or trailing whitespace")
	}

	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("sweet name must not be only whitespace")
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("sweet name must not contain control characters")
		}
	}

	return nil
}

// ValidateSweetForCreation performs cross-field validation on a fully-constructed
// Sweet aggregate before it is persisted. It assumes the Sweet was built via
// models.NewSweet (so the name is structurally valid) and adds the business
// rules that keep an inventory record coherent.
func ValidateSweetForCreation(sweet *models.Sweet) error {
	if sweet == nil {
		return fmt.Errorf("sweet cannot be nil")
	}

	if err := ValidateName(sweet.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	if strings.TrimSpace(sweet.Category) == "" {
		return fmt.Errorf("category must be set")
	}

	if sweet.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}

	if sweet.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	if sweet.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}

	return nil
}
