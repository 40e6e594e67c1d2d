package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// contributorIDPattern is the machine-safe contributor token: lowercase letters, digits, underscore.
var contributorIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// IsContributorID reports whether s is a valid contributor identifier
func IsContributorID(s string) bool {
	return contributorIDPattern.MatchString(s)
}

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("contributor_id", func(fl validator.FieldLevel) bool {
		return IsContributorID(fl.Field().String())
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
