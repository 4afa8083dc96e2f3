package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ParseError converts validator errors into a field->message map usable in
// API responses. Non-validator errors collapse into a single "error" entry.
func ParseError(err error) map[string]string {
	fields := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			key := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				fields[key] = fmt.Sprintf("The %s field is required.", fe.Field())
			case "min":
				fields[key] = fmt.Sprintf("The %s field must be at least %s.", fe.Field(), fe.Param())
			case "max":
				fields[key] = fmt.Sprintf("The %s field must not exceed %s.", fe.Field(), fe.Param())
			case "oneof":
				fields[key] = fmt.Sprintf("The %s field must be one of: %s.", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
			case "email":
				fields[key] = fmt.Sprintf("The %s field must be a valid email address.", fe.Field())
			default:
				fields[key] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", fe.Field(), fe.Tag())
			}
		}
	} else if err != nil {
		fields["error"] = err.Error()
	}
	return fields
}
