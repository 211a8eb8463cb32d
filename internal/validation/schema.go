package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Constraint checks (email, min, gt, oneof) are delegated to a shared
// validator instance. It is read-only after construction and safe for
// concurrent use.
var validate = validator.New()

// FieldType is the primitive type a schema field asserts.
type FieldType int

const (
	TypeString FieldType = iota
	TypeNumber
)

// Field declares the contract for one payload field: presence, primitive
// type, coercion and constraints. Built with String/Number plus chained
// modifiers, then frozen inside a Schema.
type Field struct {
	name     string
	kind     FieldType
	optional bool
	coerce   bool
	minLen   int
	email    bool
	positive bool
	oneOf    []string
}

// String declares a required string field.
func String(name string) *Field {
	return &Field{name: name, kind: TypeString}
}

// Number declares a required numeric field.
func Number(name string) *Field {
	return &Field{name: name, kind: TypeNumber}
}

// Optional marks the field as optional; absent values are skipped.
func (f *Field) Optional() *Field {
	f.optional = true
	return f
}

// MinLen requires a minimum string length.
func (f *Field) MinLen(n int) *Field {
	f.minLen = n
	return f
}

// Email requires the value to be a well-formed email address.
func (f *Field) Email() *Field {
	f.email = true
	return f
}

// OneOf restricts the value to an allowed set.
func (f *Field) OneOf(values ...string) *Field {
	f.oneOf = values
	return f
}

// Positive requires a number strictly greater than zero.
func (f *Field) Positive() *Field {
	f.positive = true
	return f
}

// Coerce allows numeric strings to be converted to numbers.
func (f *Field) Coerce() *Field {
	f.coerce = true
	return f
}

// Schema is an ordered set of field contracts. Schemas are built once at
// startup alongside the route table and never mutated; Validate only reads
// them.
type Schema struct {
	fields []*Field
}

// NewSchema builds a schema from field declarations.
func NewSchema(fields ...*Field) *Schema {
	return &Schema{fields: fields}
}

// Validate checks raw against the schema. On success it returns the payload
// with declared fields normalized (coercions applied); undeclared fields pass
// through untouched. On failure it returns an *Error listing every field
// failure in declaration order, not just the first.
func (s *Schema) Validate(raw map[string]any) (Payload, error) {
	normalized := make(Payload, len(raw))
	for k, v := range raw {
		normalized[k] = v
	}

	var failures []FieldError
	for _, field := range s.fields {
		value, present := raw[field.name]
		if !present || value == nil {
			if !field.optional {
				failures = append(failures, FieldError{Field: field.name, Message: "is required"})
			}
			continue
		}

		coerced, msg := field.check(value)
		if msg != "" {
			failures = append(failures, FieldError{Field: field.name, Message: msg})
			continue
		}
		normalized[field.name] = coerced
	}

	if len(failures) > 0 {
		return nil, &Error{Fields: failures}
	}
	return normalized, nil
}

// check validates a single present value, returning the normalized value or
// a failure message.
func (f *Field) check(value any) (any, string) {
	switch f.kind {
	case TypeString:
		str, ok := value.(string)
		if !ok {
			return nil, "must be a string"
		}
		if f.minLen > 0 {
			if err := validate.Var(str, fmt.Sprintf("min=%d", f.minLen)); err != nil {
				return nil, fmt.Sprintf("must be at least %d characters", f.minLen)
			}
		}
		if f.email {
			if err := validate.Var(str, "email"); err != nil {
				return nil, "must be a valid email address"
			}
		}
		if len(f.oneOf) > 0 {
			if err := validate.Var(str, "oneof="+strings.Join(f.oneOf, " ")); err != nil {
				return nil, "must be one of " + strings.Join(f.oneOf, ", ")
			}
		}
		return str, ""
	case TypeNumber:
		num, ok := toNumber(value, f.coerce)
		if !ok {
			return nil, "must be a number"
		}
		if f.positive {
			if err := validate.Var(num, "gt=0"); err != nil {
				return nil, "must be a positive number"
			}
		}
		return num, ""
	}
	return value, ""
}

func toNumber(value any, coerce bool) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if !coerce {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
