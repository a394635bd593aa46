package validators

import (
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// IsSlotLabel accepts catalog entries of the form "HH:MM". Unparseable labels
// are rejected at ingestion so the catalog never carries dead entries.
func IsSlotLabel(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

func IsIso8601(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.RFC3339, fl.Field().String())
	return err == nil
}

// IsDigits accepts non-empty strings made of decimal digits only.
func IsDigits(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
