package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cadetforge/arena_api/ledger"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("category", validateCategory)
	validate.RegisterValidation("not_blank", validateNotBlank)
}

func GetValidator() *validator.Validate {
	return validate
}

func validateCategory(fl validator.FieldLevel) bool {
	_, err := ledger.ParseCategory(fl.Field().String())
	return err == nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required", "not_blank":
				message = fieldError.Field() + " is required"
			case "email":
				message = "Invalid email format"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param()
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param()
			case "gte":
				message = fieldError.Field() + " must be greater than or equal to " + fieldError.Param()
			case "category":
				message = fieldError.Field() + " must be one of: aptitude technical hr"
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "unique":
				message = fieldError.Field() + " must not repeat " + fieldError.Param()
			case "dive":
				message = fieldError.Field() + " contains invalid items"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type Validator interface {
	Validate() error
}

type ValidationError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"Invalid email format"`
}
