package validator

import (
	"errors"
	"regexp"
)

// Kind identifies a rule and doubles as the error key it produces.
type Kind string

const (
	KindRequired     Kind = "required"
	KindPattern      Kind = "pattern"
	KindEmail        Kind = "email"
	KindMinLength    Kind = "minLength"
	KindMaxLength    Kind = "maxLength"
	KindMin          Kind = "min"
	KindRequiredTrue Kind = "requiredTrue"

	// Produced by asynchronous checks.
	KindUserExists  Kind = "userExists"
	KindCheckFailed Kind = "checkFailed"

	// Injected by cross-field rules.
	KindMatchingRequired Kind = "matchingRequired"
)

// Rule is a declarative synchronous rule: a kind plus its parameters.
// Only the parameters relevant to the kind are read.
type Rule struct {
	Kind Kind

	// Pattern and PatternName parameterize KindPattern.
	Pattern     *regexp.Regexp
	PatternName string

	// Length parameterizes KindMinLength and KindMaxLength.
	Length int

	// Bound parameterizes KindMin.
	Bound float64
}

// Required fails on nil, the empty string and false.
func Required() Rule { return Rule{Kind: KindRequired} }

// RequiredTrue fails unless the value is the boolean true.
func RequiredTrue() Rule { return Rule{Kind: KindRequiredTrue} }

// Email checks that a string parses as a bare RFC 5322 address.
func Email() Rule { return Rule{Kind: KindEmail} }

// MinLength requires at least n runes. Empty and non-string values pass.
func MinLength(n int) Rule { return Rule{Kind: KindMinLength, Length: n} }

// MaxLength allows at most n runes. Non-string values pass.
func MaxLength(n int) Rule { return Rule{Kind: KindMaxLength, Length: n} }

// Min is a numeric lower bound. Values that do not parse as numbers pass.
func Min(n float64) Rule { return Rule{Kind: KindMin, Bound: n} }

// Pattern builds a pattern rule from a precompiled expression.
func Pattern(name string, re *regexp.Regexp) Rule {
	return Rule{Kind: KindPattern, Pattern: re, PatternName: name}
}

// CompilePattern builds a pattern rule from an expression string.
func CompilePattern(name, expr string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, errors.Join(ErrInvalidPattern, err)
	}
	return Pattern(name, re), nil
}

// MustCompilePattern is like CompilePattern but panics on a bad expression.
func MustCompilePattern(name, expr string) Rule {
	r, err := CompilePattern(name, expr)
	if err != nil {
		panic(err)
	}
	return r
}
