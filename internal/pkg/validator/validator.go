package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct tags and returns a field -> failed-rule map,
// nil when the value passes.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	details := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return details
}
