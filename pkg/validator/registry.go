package validator

import (
	"errors"
	"fmt"
	"maps"
	"sync"
)

// Definition describes how a rule kind is configured, checked and reported.
type Definition struct {
	// Check reports whether value satisfies rule. It must be pure.
	Check func(rule Rule, value any) bool

	// Validate rejects unusable rule parameters at build time. Optional.
	Validate func(rule Rule) error

	// Message renders the default English message. Optional.
	Message func(rule Rule) string

	// Params returns translation parameters beyond the field name. Optional.
	Params func(rule Rule, value any) map[string]any

	TranslationKey string
}

// Registry maps rule kinds to their definitions. Rules are looked up at
// evaluation time, so a Rule value carries no behavior of its own.
// A Registry is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs map[Kind]Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[Kind]Definition)}
}

// DefaultRegistry returns a new registry preloaded with the built-in kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	maps.Copy(r.defs, builtins())
	return r
}

// Register adds a definition for kind. Built-in kinds cannot be replaced.
func (r *Registry) Register(kind Kind, def Definition) error {
	if kind == "" || def.Check == nil {
		return fmt.Errorf("%w: kind %q needs a name and a check", ErrInvalidRule, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.defs[kind]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, kind)
	}
	r.defs[kind] = def
	return nil
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[kind]
	return ok
}

// Validate checks a rule set before it is used. All problems are joined.
func (r *Registry) Validate(rules ...Rule) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for i, rule := range rules {
		def, ok := r.defs[rule.Kind]
		if !ok {
			errs = append(errs, fmt.Errorf("rule %d: %w: %q", i, ErrUnknownRule, rule.Kind))
			continue
		}
		if def.Validate == nil {
			continue
		}
		if err := def.Validate(rule); err != nil {
			errs = append(errs, fmt.Errorf("rule %d (%s): %w", i, rule.Kind, err))
		}
	}
	return errors.Join(errs...)
}

// Evaluate runs rules in order against value and returns the failing kinds.
// The result is nil when every rule passes. Unknown kinds are skipped;
// Validate is where they are reported.
func (r *Registry) Evaluate(field string, value any, rules []Rule) Failures {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var failures Failures
	for _, rule := range rules {
		def, ok := r.defs[rule.Kind]
		if !ok || def.Check(rule, value) {
			continue
		}
		if failures == nil {
			failures = make(Failures)
		}
		failures[rule.Kind] = r.describe(field, rule, value, def)
	}
	return failures
}

// Describe builds the error details for kind without running a check.
// It is used for errors that do not come from a synchronous rule, such
// as asynchronous or cross-field failures.
func (r *Registry) Describe(field string, kind Kind, value any) ValidationError {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule := Rule{Kind: kind}
	def, ok := r.defs[kind]
	if !ok {
		return ValidationError{
			Field:             field,
			Kind:              kind,
			Message:           string(kind),
			TranslationKey:    "validation." + string(kind),
			TranslationValues: map[string]any{"field": field},
		}
	}
	return r.describe(field, rule, value, def)
}

func (r *Registry) describe(field string, rule Rule, value any, def Definition) ValidationError {
	values := map[string]any{"field": field}
	if def.Params != nil {
		maps.Copy(values, def.Params(rule, value))
	}

	msg := string(rule.Kind)
	if def.Message != nil {
		msg = def.Message(rule)
	}

	key := def.TranslationKey
	if key == "" {
		key = "validation." + string(rule.Kind)
	}

	return ValidationError{
		Field:             field,
		Kind:              rule.Kind,
		Message:           msg,
		TranslationKey:    key,
		TranslationValues: values,
	}
}
