package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New builds the validator used to screen remote user records.
// Field names in errors come from JSON tags so log details match the wire.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ToDetails converts validation errors into a map[field]message suitable for
// structured log fields or an API error payload.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"record": "invalid record"}
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	default:
		if p := fe.Param(); p != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", fe.Tag(), p)
		}
		return fmt.Sprintf("validation failed for '%s'", fe.Tag())
	}
}
