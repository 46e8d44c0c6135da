// Package validation adapts go-playground/validator to echo's Validator
// interface, enforcing the validate tags on the request DTOs (customer,
// dress, rental and portal payloads).
package validation

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

// Validate satisfies echo.Validator; i is the bound request DTO.
func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}
