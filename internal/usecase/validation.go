package usecase

import (
	"fmt"
	"strings"

	"github.com/xavierca1/mailmorph/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validationFailed folds field errors into one DomainError wrapping ErrValidation.
func validationFailed(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: "validation failed: " + strings.Join(parts, ", "),
		Err:     entity.ErrValidation,
	}
}

func ValidateCheckoutInput(input CheckoutInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	}
	if len(input.Items) == 0 {
		errors = append(errors, ValidationError{"items", "must contain at least one item"})
	}
	for i, item := range input.Items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.Title) == "" {
			errors = append(errors, ValidationError{field + ".title", "is required"})
		}
		if item.Price < 0 {
			errors = append(errors, ValidationError{field + ".price", "must not be negative"})
		}
		if item.Quantity <= 0 {
			errors = append(errors, ValidationError{field + ".quantity", "must be at least 1"})
		}
	}

	return errors
}

func ValidateBulkSendInput(input BulkSendInput) []ValidationError {
	var errors []ValidationError

	if len(input.To) == 0 {
		errors = append(errors, ValidationError{"to", "must contain at least one recipient"})
	}
	for i, to := range input.To {
		if strings.TrimSpace(to) == "" {
			errors = append(errors, ValidationError{fmt.Sprintf("to[%d]", i), "is required"})
		}
	}

	return errors
}
