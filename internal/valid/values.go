package valid

// Values holds the coerced result of a validated fragment. Accessors assume
// the schema declared the matching constraint kind; a missing optional field
// yields the zero value.
type Values map[string]any

// Has reports whether the field was present in the fragment.
func (v Values) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// Int returns an integer field.
func (v Values) Int(field string) int64 {
	n, _ := v[field].(int64)
	return n
}

// IntOr returns an integer field, or fallback when absent.
func (v Values) IntOr(field string, fallback int64) int64 {
	if raw, ok := v[field]; ok {
		if n, ok := raw.(int64); ok {
			return n
		}
	}
	return fallback
}

// String returns a string field.
func (v Values) String(field string) string {
	s, _ := v[field].(string)
	return s
}

// Bool returns a boolean field.
func (v Values) Bool(field string) bool {
	b, _ := v[field].(bool)
	return b
}

// StringSlice returns a string-array field.
func (v Values) StringSlice(field string) []string {
	s, _ := v[field].([]string)
	return s
}
