package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for registration input
	if err := Validate.RegisterValidation("person_name", validatePersonName); err != nil {
		panic(fmt.Sprintf("failed to register person_name validator: %v", err))
	}
	if err := Validate.RegisterValidation("password_strength", validatePasswordStrength); err != nil {
		panic(fmt.Sprintf("failed to register password_strength validator: %v", err))
	}
}

// validatePersonName accepts display names of letters and spaces only
func validatePersonName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, r := range value {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

// validatePasswordStrength requires at least one uppercase letter and one digit
func validatePasswordStrength(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	var hasUpper, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidationMessage turns a validator error into a client-safe message
func ValidationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "Validation failed"
	}

	fe := validationErrors[0]
	switch fe.Field() {
	case "Name":
		switch fe.Tag() {
		case "min":
			return "Name must be at least 2 characters"
		case "max":
			return "Name must be less than 50 characters"
		case "person_name":
			return "Name can only contain letters and spaces"
		}
	case "Email":
		return "Invalid email address"
	case "Password":
		switch fe.Tag() {
		case "min":
			return "Password must be at least 10 characters"
		case "password_strength":
			return "Password must contain at least one uppercase letter and one number"
		case "required":
			return "Password is required"
		}
	case "Title":
		return "Title is required"
	}

	return fmt.Sprintf("Validation failed on field %s", fe.Field())
}
