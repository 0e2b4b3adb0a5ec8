package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks the validate tags on a request body and returns an error
// describing the first failing field.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return errors.New(describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Error: %s is required", field)
	case "email":
		return fmt.Sprintf("Error: %s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Error: %s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("Error: %s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Error: %s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("Error: %s must be at most %s", field, fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("Error: %s is out of range", field)
	default:
		return fmt.Sprintf("Error: %s is invalid", field)
	}
}
