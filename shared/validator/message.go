package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"email":       "{field} must be a valid email address",
	"oneof":       "{field} must be one of {param}",
	"min":         "{field} must be at least {param}",
	"max":         "{field} must be at most {param}",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"datetime":    "{field} must follow the {param} layout",
	"nefield":     "{field} must differ from {param}",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// message describes the first failed rule. A bare variable has no field
// name, so it is called "value".
func message(err error) string {
	var errs val.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	first := errs[0]

	template, ok := messages[first.Tag()]
	if !ok {
		return errs.Error()
	}

	field := first.Field()
	if field == "" {
		field = "value"
	}

	return strings.NewReplacer("{field}", field, "{param}", first.Param()).Replace(template)
}
