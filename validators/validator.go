package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// usernamePattern mirrors the signup rule: letters, digits, underscores
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Validator adapts go-playground/validator to echo's Validator interface
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the custom rules registered
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
