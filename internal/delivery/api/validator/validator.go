// Package validator adapts go-playground/validator to echo's Validator.
package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"savvy/config"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/errors"
)

// TagPassword validates a password against the configured strength rules.
const TagPassword = "password"

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
	strength config.PasswordStrengthConfig
}

// New builds a validator with the "password" rule bound to strength.
func New(strength *config.PasswordStrengthConfig) *CustomValidator {
	cv := &CustomValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
	if strength != nil {
		cv.strength = *strength
	}

	// Registering a tag on a fresh instance only fails on an empty tag name.
	_ = cv.validate.RegisterValidation(TagPassword, func(fl validator.FieldLevel) bool {
		return cv.strongEnough(fl.Field().String())
	})

	return cv
}

// Validate returns ErrValidationFailed with one entry per failing field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(err.Error()))
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, cv.describe(fe))
	}

	return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(strings.Join(msgs, "; ")))
}

func (cv *CustomValidator) describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case TagPassword:
		return field + " " + cv.passwordRule()
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}

func (cv *CustomValidator) strongEnough(password string) bool {
	s := cv.strength
	length := len([]rune(password))
	if length < s.MinLength || (s.MaxLength > 0 && length > s.MaxLength) {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	return (!s.RequireUppercase || hasUpper) &&
		(!s.RequireLowercase || hasLower) &&
		(!s.RequireNumbers || hasDigit) &&
		(!s.RequireSpecial || hasSpecial)
}

func (cv *CustomValidator) passwordRule() string {
	s := cv.strength
	parts := []string{fmt.Sprintf("at least %d characters", s.MinLength)}
	if s.RequireNumbers {
		parts = append(parts, "one number")
	}
	if s.RequireUppercase {
		parts = append(parts, "one uppercase letter")
	}
	if s.RequireLowercase {
		parts = append(parts, "one lowercase letter")
	}
	if s.RequireSpecial {
		parts = append(parts, "one special character")
	}

	return "must contain " + strings.Join(parts, ", ")
}
