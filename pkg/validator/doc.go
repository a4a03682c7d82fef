// Package validator evaluates declarative field rules.
//
// A Rule is a tagged value: a Kind plus the parameters that kind reads
// (a compiled pattern, a length, a numeric bound). Behaviour lives in a
// Registry that maps each Kind to a Definition, so rules can be built,
// compared and logged as plain data and evaluated by a single dispatch:
//
//	reg := validator.DefaultRegistry()
//	rules := []validator.Rule{
//	    validator.Required(),
//	    validator.MinLength(4),
//	    validator.MaxLength(12),
//	}
//	if err := reg.Validate(rules...); err != nil {
//	    // misconfigured rule set, fail at build time
//	}
//	failures := reg.Evaluate("password", "abc", rules)
//	// failures.Has(validator.KindMinLength) == true
//
// Evaluate never returns an error. Failures maps each failing Kind to a
// ValidationError carrying a default message and a translation key with
// parameters; Failures.Err converts it into a ValidationErrors error for
// callers that prefer error returns.
//
// Every built-in rule except required and requiredTrue passes on an empty
// value, so an empty required field reports only KindRequired.
//
// AsyncRule describes a check whose result arrives later. The package only
// defines its shape; scheduling and supersession are handled by the form.
package validator
