package util

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates a struct using validator tags
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors formats validation errors into readable messages
func GetValidationErrors(err error) []string {
	var messages []string
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		if err != nil {
			messages = append(messages, err.Error())
		}
		return messages
	}
	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			messages = append(messages, fieldError.Field()+" is required")
		case "email":
			messages = append(messages, fieldError.Field()+" must be a valid email")
		case "hexcolor":
			messages = append(messages, fieldError.Field()+" must be a hex color like #023664")
		case "min", "gte":
			messages = append(messages, fieldError.Field()+" must be at least "+fieldError.Param())
		case "max", "lte":
			messages = append(messages, fieldError.Field()+" must be at most "+fieldError.Param())
		case "gt":
			messages = append(messages, fieldError.Field()+" must be greater than "+fieldError.Param())
		default:
			messages = append(messages, fieldError.Field()+" is invalid")
		}
	}
	return messages
}
