package form

import (
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// FieldSpec declares one field: its name, initial value and rules. The
// initial value also fixes the field's value type: a string or bool
// initial value only accepts values of that type (or nil); a nil initial
// value accepts either.
type FieldSpec struct {
	Name    string
	Initial any
	Rules   []validator.Rule
	Async   *validator.AsyncRule

	// Sensitive values are masked by the default LogReporter.
	Sensitive bool
}

// Text declares a string field.
func Text(name string, rules ...validator.Rule) FieldSpec {
	return FieldSpec{Name: name, Initial: "", Rules: rules}
}

// Bool declares a boolean field.
func Bool(name string, rules ...validator.Rule) FieldSpec {
	return FieldSpec{Name: name, Initial: false, Rules: rules}
}

// WithAsync returns a copy of s carrying the given asynchronous rule.
func (s FieldSpec) WithAsync(rule validator.AsyncRule) FieldSpec {
	s.Async = &rule
	return s
}

// AsSensitive returns a copy of s whose value is masked in submission logs.
func (s FieldSpec) AsSensitive() FieldSpec {
	s.Sensitive = true
	return s
}

// CrossFieldRule relates two fields. When Predicate fails, Kind is
// injected on the Dependent field and the form reports the failure. The
// rule is a no-op while the dependent field has errors of its own.
type CrossFieldRule struct {
	Primary   string
	Dependent string
	Kind      validator.Kind
	Predicate func(primary, dependent any) bool
}

// Match requires dependent to hold exactly the raw value of primary.
func Match(primary, dependent string) CrossFieldRule {
	return CrossFieldRule{
		Primary:   primary,
		Dependent: dependent,
		Kind:      validator.KindMatchingRequired,
		Predicate: func(a, b any) bool { return a == b },
	}
}

func (r CrossFieldRule) String() string {
	return fmt.Sprintf("%s(%s, %s)", r.Kind, r.Primary, r.Dependent)
}

// CrossFieldFailure records a failing cross-field rule in a snapshot.
type CrossFieldFailure struct {
	Primary   string
	Dependent string
	Kind      validator.Kind
}

func acceptsValue(initial, v any) bool {
	if v == nil {
		return true
	}
	switch initial.(type) {
	case string:
		_, ok := v.(string)
		return ok
	case bool:
		_, ok := v.(bool)
		return ok
	case nil:
		switch v.(type) {
		case string, bool:
			return true
		}
	}
	return false
}

func validInitial(v any) bool {
	switch v.(type) {
	case nil, string, bool:
		return true
	}
	return false
}
