package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs the shared validator over a request struct's validate tags.
func Validate(req interface{}) error {
	return validate.Struct(req)
}
