package validation

import "strings"

// FieldError describes one field that failed its contract.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries every field failure found in a payload, in schema
// declaration order.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Details renders the failure list for error responses.
func (e *Error) Details() map[string]any {
	fields := make([]map[string]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		fields = append(fields, map[string]string{"field": f.Field, "message": f.Message})
	}
	return map[string]any{"fields": fields}
}
