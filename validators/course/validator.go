package courseValidator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Report violations under the json field name the client sent
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validationErrors(err error) map[string]string {
	errs := make(map[string]string)

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		errs["body"] = "Invalid request body!"
		return errs
	}

	for _, fe := range vErrs {
		errs[fe.Field()] = validationMessage(fe)
	}
	return errs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "This field is required!"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long!", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long!", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s!", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("Must be greater than %s!", fe.Param())
	case "url":
		return "Must be a valid URL!"
	case "email":
		return "Invalid email!"
	}
	return "Invalid value!"
}
