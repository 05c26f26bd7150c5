// Package validate holds the pure field validators shared by the service
// layer. Every function takes a pointer: nil means the field was absent, so
// the same validator serves both create (required) and partial-update
// (optional) paths. The first violation found is the one reported.
package validate

import (
	"strings"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/shopspring/decimal"
)

const (
	maxStringLength  = 50
	maxPhoneDigits   = 10
	maxEmailLength   = 50
	maxAddressLength = 100
	maxPasswordBytes = 72 // bcrypt input limit
)

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// StringField validates a bounded non-empty string such as a name.
func StringField(value *string, fieldName string, required bool) error {
	if value == nil {
		if required {
			return apperr.BadRequest("%s cannot be empty", fieldName)
		}
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return apperr.BadRequest("%s cannot be empty", fieldName)
	}
	if len(*value) > maxStringLength {
		return apperr.BadRequest("%s must have less than %d characters", fieldName, maxStringLength)
	}
	return nil
}

// Phone validates a digits-only phone number of at most ten digits.
func Phone(value *string, required bool) error {
	if value == nil {
		if required {
			return apperr.BadRequest("Phone cannot be empty")
		}
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return apperr.BadRequest("Phone cannot be empty")
	}
	if !isDigits(*value) {
		return apperr.BadRequest("Phone must contain only digits")
	}
	if len(*value) > maxPhoneDigits {
		return apperr.BadRequest("Phone must have less than %d digits", maxPhoneDigits)
	}
	return nil
}

// Email validates a rough email shape: contains "@" and is bounded.
func Email(value *string, required bool) error {
	if value == nil {
		if required {
			return apperr.BadRequest("Email cannot be empty")
		}
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return apperr.BadRequest("Email cannot be empty")
	}
	if !strings.Contains(*value, "@") {
		return apperr.BadRequest("Invalid email format")
	}
	if len(*value) > maxEmailLength {
		return apperr.BadRequest("Email must have less than %d characters", maxEmailLength)
	}
	return nil
}

// IdentityCard validates a DNI/RUC number: digits only, 8 to 11 of them.
func IdentityCard(value *string, required bool) error {
	if value == nil {
		if required {
			return apperr.BadRequest("Identity card cannot be empty")
		}
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return apperr.BadRequest("Identity card cannot be empty")
	}
	if !isDigits(*value) {
		return apperr.BadRequest("Identity card must contain only digits")
	}
	if n := len(*value); n < 8 || n > 11 {
		return apperr.BadRequest("Identity card must have between 8 and 11 digits")
	}
	return nil
}

// Address validates a bounded free-form address.
func Address(value *string, required bool) error {
	if value == nil {
		if required {
			return apperr.BadRequest("Address cannot be empty")
		}
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return apperr.BadRequest("Address cannot be empty")
	}
	if len(*value) > maxAddressLength {
		return apperr.BadRequest("Address must have less than %d characters", maxAddressLength)
	}
	return nil
}

// NIT validates a tax identification number: digits only, 10 or 11 of them.
func NIT(value *string, required bool) error {
	if value == nil {
		if required {
			return apperr.BadRequest("NIT cannot be empty")
		}
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return apperr.BadRequest("NIT cannot be empty")
	}
	if n := len(*value); n < 10 || n > 11 {
		return apperr.BadRequest("NIT must have between 10 and 11 characters")
	}
	if !isDigits(*value) {
		return apperr.BadRequest("NIT must contain only digits")
	}
	return nil
}

// Password validates password presence. Policy is minimal on purpose: the
// only hard constraint is bcrypt's input limit.
func Password(value *string, required bool) error {
	if value == nil {
		if required {
			return apperr.BadRequest("Password cannot be empty")
		}
		return nil
	}
	if *value == "" {
		return apperr.BadRequest("Password cannot be empty")
	}
	if len(*value) > maxPasswordBytes {
		return apperr.BadRequest("Password must have less than %d characters", maxPasswordBytes)
	}
	return nil
}

// IntField validates an integer against a minimum bound.
func IntField(value *int, fieldName string, minValue int, required bool) error {
	if value == nil {
		if required {
			return apperr.BadRequest("%s is required", fieldName)
		}
		return nil
	}
	if *value < minValue {
		return apperr.BadRequest("%s must be greater than or equal to %d", fieldName, minValue)
	}
	return nil
}

// Price validates a money amount: non-negative with at most two decimal
// places.
func Price(value *decimal.Decimal, fieldName string, required bool) error {
	if value == nil {
		if required {
			return apperr.BadRequest("%s is required", fieldName)
		}
		return nil
	}
	if value.IsNegative() {
		return apperr.BadRequest("%s must be a positive number", fieldName)
	}
	if value.Exponent() < -2 {
		return apperr.BadRequest("%s must have at most 2 decimal places", fieldName)
	}
	return nil
}
