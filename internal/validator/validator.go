// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
		_ = v.RegisterValidation("civil_date", validateCivilDate)
		_ = v.RegisterValidation("posting_type", validatePostingType)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("type_nature", validateTypeNature)
		_ = v.RegisterValidation("rate_source", validateRateSource)
	}
}

// validateCurrencyCode checks the ISO 4217 shape (three uppercase
// letters). Whether the code exists and is enabled is a registry lookup
// that belongs to the service layer.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodeRegex.MatchString(fl.Field().String())
}

// validateCivilDate checks for a calendar date in YYYY-MM-DD form.
func validateCivilDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validatePostingType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "expense", "income":
		return true
	}
	return false
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "expense", "income", "saving", "liability", "transfer_special":
		return true
	}
	return false
}

func validateTypeNature(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "asset", "liability", "other":
		return true
	}
	return false
}

func validateRateSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "manual", "import", "provider":
		return true
	}
	return false
}
