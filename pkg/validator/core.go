package validator

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure with translation support.
type ValidationError struct {
	Field             string
	Kind              Kind
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Failures maps each failing rule kind of one field to its error details.
// An empty (or nil) Failures means the field is valid.
type Failures map[Kind]ValidationError

// Has reports whether the given kind failed.
func (f Failures) Has(kind Kind) bool {
	_, ok := f[kind]
	return ok
}

// Kinds returns the failing kinds in a stable order.
func (f Failures) Kinds() []Kind {
	return slices.Sorted(maps.Keys(f))
}

// HasOtherThan reports whether any kind other than the given one failed.
func (f Failures) HasOtherThan(kind Kind) bool {
	for k := range f {
		if k != kind {
			return true
		}
	}
	return false
}

// Clone returns an independent copy. The result is never nil.
func (f Failures) Clone() Failures {
	out := make(Failures, len(f))
	maps.Copy(out, f)
	return out
}

// Merge returns a new Failures holding the union of f and others.
// Later entries win on kind collisions.
func (f Failures) Merge(others ...Failures) Failures {
	out := f.Clone()
	for _, o := range others {
		maps.Copy(out, o)
	}
	return out
}

// Err converts the failures into a ValidationErrors error, or nil when empty.
func (f Failures) Err() error {
	if len(f) == 0 {
		return nil
	}
	errs := make(ValidationErrors, 0, len(f))
	for _, k := range f.Kinds() {
		errs = append(errs, f[k])
	}
	return errs
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
