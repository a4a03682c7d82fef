package validator

import "errors"

// Configuration errors. They surface when a rule set is validated at form
// build time; evaluation itself never returns an error.
var (
	// ErrUnknownRule is returned when a rule kind has no registered definition.
	ErrUnknownRule = errors.New("unknown rule kind")

	// ErrInvalidRule is returned when a rule's parameters are unusable.
	ErrInvalidRule = errors.New("invalid rule configuration")

	// ErrDuplicateRule is returned when a kind is registered twice.
	ErrDuplicateRule = errors.New("rule kind already registered")

	// ErrInvalidPattern is returned when a pattern expression does not compile.
	ErrInvalidPattern = errors.New("invalid pattern expression")
)
