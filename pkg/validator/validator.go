package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MissingProfileFields is returned whenever a profile body lacks a name or an email.
const MissingProfileFields = "Name and email are required"

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

// IsMissingRequired reports whether err only complains about absent required fields.
func IsMissingRequired(err error) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return false
	}
	for _, fe := range validationErrors {
		if fe.Tag() != "required" {
			return false
		}
	}
	return true
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Name":  "Name",
		"Email": "Email",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
