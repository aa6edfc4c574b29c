package dto

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// IsStrongPassword reports whether pwd contains at least one lower-case
// letter, one upper-case letter and a digit or special symbol.
func IsStrongPassword(pwd string) bool {
	var hasLower, hasUpper, hasDigitOrSpecial bool
	for _, r := range pwd {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r), unicode.IsPunct(r), unicode.IsSymbol(r):
			hasDigitOrSpecial = true
		}
	}
	return hasLower && hasUpper && hasDigitOrSpecial
}

// RegisterValidations installs the custom rules the DTO tags rely on.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
}
