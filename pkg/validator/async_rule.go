package validator

import "context"

// AsyncCheck reports whether value fails the check. A non-nil error means
// the check itself could not complete.
type AsyncCheck func(ctx context.Context, value any) (failed bool, err error)

// AsyncRule is a rule whose outcome arrives later, e.g. a lookup against a
// remote service. A field carries at most one.
type AsyncRule struct {
	Kind  Kind
	Check AsyncCheck
}

// Validate rejects an async rule without a kind or a check.
func (r AsyncRule) Validate() error {
	if r.Kind == "" || r.Check == nil {
		return ErrInvalidRule
	}
	return nil
}
