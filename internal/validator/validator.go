package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	environments = map[string]bool{"dev": true, "staging": true, "prod": true, "test": true}
	currencyRgx  = regexp.MustCompile(`^[a-z]{3}$`)
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("env", validateEnv)
	validator.RegisterValidation("currency", validateCurrency)

	return validator
}

func validateEnv(fl validator.FieldLevel) bool {
	return environments[fl.Field().String()]
}

// Stripe expects lowercase ISO 4217 codes.
func validateCurrency(fl validator.FieldLevel) bool {
	return currencyRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "required_with":
		return fmt.Sprintf("is required when %s is set", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "env":
		return "must be one of dev, staging, prod or test"
	case "currency":
		return "must be a three letter lowercase currency code"
	default:
		return "is invalid"
	}
}
