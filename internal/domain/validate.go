package domain

import "strings"

// ValidateDraft checks the required fields of a task form before it is
// submitted as an add or update. Whitespace-only values count as empty.
func ValidateDraft(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "please fill all fields"}
	}
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Field: "description", Message: "please fill all fields"}
	}
	return nil
}
