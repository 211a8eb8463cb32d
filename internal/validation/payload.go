package validation

// Payload is a validated, normalized request body. Numeric fields are stored
// as float64 after coercion; everything else keeps its decoded JSON type.
type Payload map[string]any

// String returns the named field as a string, or "" when absent.
func (p Payload) String(name string) string {
	s, _ := p[name].(string)
	return s
}

// OptString returns the named field and whether it was present as a string.
func (p Payload) OptString(name string) (string, bool) {
	s, ok := p[name].(string)
	return s, ok
}

// Int64 returns the named numeric field truncated to int64, or 0 when absent.
func (p Payload) Int64(name string) int64 {
	f, _ := p[name].(float64)
	return int64(f)
}

// Has reports whether the named field is present and non-nil.
func (p Payload) Has(name string) bool {
	v, ok := p[name]
	return ok && v != nil
}
