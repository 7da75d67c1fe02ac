// Package valid converts untyped request fragments (body, query, path
// parameters) into typed, constraint-checked values. Schemas are explicit
// constraint tables built with a small builder API; no reflection is involved
// and validation is a pure function of the fragment and the schema.
package valid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Error reports every violated field of a fragment.
type Error struct {
	Violations map[string]string
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for name := range e.Violations {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, name := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Violations[name]))
	}
	return strings.Join(parts, "; ")
}

// Constraint coerces and checks a single field value.
type Constraint interface {
	check(raw any) (any, error)
	isOptional() bool
}

type field struct {
	name       string
	constraint Constraint
}

// Schema is an ordered constraint table keyed by field name.
type Schema struct {
	fields []field
}

// Object starts a new schema.
func Object() *Schema {
	return &Schema{}
}

// Field appends a named constraint. Declaration order is evaluation order.
func (s *Schema) Field(name string, c Constraint) *Schema {
	s.fields = append(s.fields, field{name: name, constraint: c})
	return s
}

// Validate checks the fragment against the schema. A nil fragment is treated
// as an empty object, so a schema of only optional fields passes against an
// absent fragment. Unknown extra fields are ignored. Every field is evaluated;
// the returned *Error enumerates all violations.
func (s *Schema) Validate(fragment map[string]any) (Values, error) {
	values := make(Values, len(s.fields))
	violations := map[string]string{}

	for _, f := range s.fields {
		raw, present := fragment[f.name]
		if !present || raw == nil {
			if !f.constraint.isOptional() {
				violations[f.name] = "required"
			}
			continue
		}
		coerced, err := f.constraint.check(raw)
		if err != nil {
			violations[f.name] = err.Error()
			continue
		}
		values[f.name] = coerced
	}

	if len(violations) > 0 {
		return nil, &Error{Violations: violations}
	}
	return values, nil
}

// StringRule constrains a string field.
type StringRule struct {
	minLen, maxLen int
	hasMin, hasMax bool
	enum           []string
	opt            bool
}

// String starts a string constraint.
func String() *StringRule {
	return &StringRule{}
}

func (r *StringRule) MinLen(n int) *StringRule { r.minLen, r.hasMin = n, true; return r }
func (r *StringRule) MaxLen(n int) *StringRule { r.maxLen, r.hasMax = n, true; return r }
func (r *StringRule) OneOf(allowed ...string) *StringRule {
	r.enum = allowed
	return r
}
func (r *StringRule) Optional() *StringRule { r.opt = true; return r }

func (r *StringRule) isOptional() bool { return r.opt }

func (r *StringRule) check(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string")
	}
	if r.hasMin && len(s) < r.minLen {
		return nil, fmt.Errorf("must be at least %d characters", r.minLen)
	}
	if r.hasMax && len(s) > r.maxLen {
		return nil, fmt.Errorf("must be at most %d characters", r.maxLen)
	}
	if len(r.enum) > 0 {
		for _, allowed := range r.enum {
			if s == allowed {
				return s, nil
			}
		}
		return nil, fmt.Errorf("must be one of %s", strings.Join(r.enum, "|"))
	}
	return s, nil
}

// IntRule constrains an integer field. Path and query fragments deliver
// numbers as strings; those are coerced before bounds run, and a coercion
// failure is a validation failure.
type IntRule struct {
	min, max       int64
	hasMin, hasMax bool
	opt            bool
}

// Int starts an integer constraint.
func Int() *IntRule {
	return &IntRule{}
}

func (r *IntRule) Min(n int64) *IntRule { r.min, r.hasMin = n, true; return r }
func (r *IntRule) Max(n int64) *IntRule { r.max, r.hasMax = n, true; return r }
func (r *IntRule) Optional() *IntRule   { r.opt = true; return r }
func (r *IntRule) isOptional() bool     { return r.opt }

func (r *IntRule) check(raw any) (any, error) {
	var n int64
	switch v := raw.(type) {
	case int64:
		n = v
	case int:
		n = int64(v)
	case float64:
		n = int64(v)
		if float64(n) != v {
			return nil, fmt.Errorf("must be an integer")
		}
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("must be an integer")
		}
		n = parsed
	default:
		return nil, fmt.Errorf("must be an integer")
	}
	if r.hasMin && n < r.min {
		return nil, fmt.Errorf("must be at least %d", r.min)
	}
	if r.hasMax && n > r.max {
		return nil, fmt.Errorf("must be at most %d", r.max)
	}
	return n, nil
}

// BoolRule constrains a boolean field, coercing "true"/"false" strings.
type BoolRule struct {
	opt bool
}

// Bool starts a boolean constraint.
func Bool() *BoolRule {
	return &BoolRule{}
}

func (r *BoolRule) Optional() *BoolRule { r.opt = true; return r }
func (r *BoolRule) isOptional() bool    { return r.opt }

func (r *BoolRule) check(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("must be a boolean")
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("must be a boolean")
	}
}

// StringsRule constrains a string array field.
type StringsRule struct {
	nonEmpty bool
	opt      bool
}

// Strings starts a string-array constraint.
func Strings() *StringsRule {
	return &StringsRule{}
}

func (r *StringsRule) NonEmpty() *StringsRule { r.nonEmpty = true; return r }
func (r *StringsRule) Optional() *StringsRule { r.opt = true; return r }
func (r *StringsRule) isOptional() bool       { return r.opt }

func (r *StringsRule) check(raw any) (any, error) {
	var out []string
	switch v := raw.(type) {
	case []string:
		out = v
	case []any:
		out = make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("must be an array of strings")
			}
			out = append(out, s)
		}
	default:
		return nil, fmt.Errorf("must be an array of strings")
	}
	if r.nonEmpty && len(out) == 0 {
		return nil, fmt.Errorf("must not be empty")
	}
	return out, nil
}
