package dto

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// The original form accepted anything shaped like local@domain.tld; exotic
// TLD or unicode validation is deliberately out of scope.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const MinMessageLength = 10

func init() {
	validate = validator.New()
	validate.RegisterValidation("not_blank", validateNotBlank)
	validate.RegisterValidation("simple_email", validateSimpleEmail)
	validate.RegisterValidation("contact_message", validateContactMessage)
}

func GetValidator() *validator.Validate {
	return validate
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateSimpleEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

func validateContactMessage(fl validator.FieldLevel) bool {
	return len(strings.TrimSpace(fl.Field().String())) >= MinMessageLength
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required", "not_blank":
				message = fieldError.Field() + " is required"
			case "simple_email":
				message = "Invalid email format"
			case "contact_message":
				message = "Message must be at least 10 characters"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param() + " characters"
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param() + " characters"
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

// FirstValidationMessage flattens a validator error into the single reason
// string the response envelope carries.
func FirstValidationMessage(err error) string {
	formatted := FormatValidationErrors(err)
	if len(formatted) == 0 {
		return "Invalid request"
	}
	return formatted[0].Message
}
