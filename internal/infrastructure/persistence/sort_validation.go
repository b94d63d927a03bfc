package persistence

import (
	"fmt"
	"strings"
)

// Sort field whitelists. Sort expressions are built by string concatenation,
// so only columns listed here may ever reach the ORDER BY clause.

// MasterSortFields lists sortable columns of master_records
var MasterSortFields = map[string]bool{
	"id":          true,
	"code":        true,
	"name":        true,
	"seq_no":      true,
	"is_active":   true,
	"create_date": true,
	"edit_date":   true,
}

// ValidateSortField checks if a sort field is in the allowed list
func ValidateSortField(field string, allowedFields map[string]bool) error {
	if field == "" {
		return nil
	}
	if !allowedFields[strings.ToLower(field)] {
		return fmt.Errorf("invalid sort field: %s", field)
	}
	return nil
}

// ValidateSortOrder checks if the sort order is valid (asc or desc)
func ValidateSortOrder(order string) error {
	if order == "" {
		return nil
	}
	lower := strings.ToLower(order)
	if lower != "asc" && lower != "desc" {
		return fmt.Errorf("invalid sort order: %s", order)
	}
	return nil
}

// BuildOrderClause builds a safe ORDER BY expression from a validated field
// and order, falling back to the given default expression.
func BuildOrderClause(field, order, defaultClause string, allowedFields map[string]bool) (string, error) {
	if field == "" {
		return defaultClause, nil
	}
	if err := ValidateSortField(field, allowedFields); err != nil {
		return "", err
	}
	if err := ValidateSortOrder(order); err != nil {
		return "", err
	}
	if order == "" {
		order = "asc"
	}
	return fmt.Sprintf("%s %s", strings.ToLower(field), strings.ToLower(order)), nil
}
