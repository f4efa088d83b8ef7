package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// templates render the first failed rule of a request. Tags without one fall back to invalidTemplate.
var templates = map[string]string{
	"required":    "{field} is required",
	"email":       "{field} must be a valid email address",
	"uuid":        "{field} must be a valid UUID",
	"oneof":       "{field} must be one of {param}",
	"min":         "{field} must be greater than or equal to {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"max":         "{field} must be less than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"date":        "{field} must be a date formatted as YYYY-MM-DD",
	"decimal":     "{field} must be a non-negative number below 10000000000 with at most 2 decimal places",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not be larger than {param} MB",
}

const invalidTemplate = "{field} is invalid"

// render fills a template. name stands in for the field of a bare variable, which has none.
func render(fieldErr val.FieldError, name string) string {
	template, ok := templates[fieldErr.Tag()]
	if !ok {
		template = invalidTemplate
	}

	if field := fieldErr.Field(); field != "" {
		name = field
	}

	return strings.NewReplacer("{field}", name, "{param}", fieldErr.Param()).Replace(template)
}

func message(err error, name string) string {
	var fieldErrs val.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return render(fieldErrs[0], name)
	}

	return err.Error()
}
