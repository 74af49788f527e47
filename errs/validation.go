package errs

import (
	"errors"
	"net/http"
	"strings"
)

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// NewValidationError reports every failed rule at once. Nothing has been written when it is returned.
func NewValidationError(fields []FieldError) *ApiErr {
	names := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if !seen[f.Field] {
			seen[f.Field] = true
			names = append(names, f.Field)
		}
	}

	e := &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrValidation,
		Details:    "invalid fields: " + strings.Join(names, ", "),
		Fields:     fields,
	}
	if len(names) == 1 {
		e.Field = names[0]
	}
	return e
}

// ValidationFields returns the failed rules carried by err, if any.
func ValidationFields(err error) []FieldError {
	var apiErr *ApiErr
	if !errors.As(err, &apiErr) {
		return nil
	}
	return apiErr.Fields
}

// MessagesByField groups messages the way form views consume them.
func MessagesByField(fields []FieldError) map[string][]string {
	out := make(map[string][]string, len(fields))
	for _, f := range fields {
		out[f.Field] = append(out[f.Field], f.Message)
	}
	return out
}
