package form

import (
	"maps"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Values is the flat submit payload: field name to current value.
type Values map[string]any

// FieldState is an immutable view of one field.
type FieldState struct {
	Name    string
	Value   any
	Status  Status
	Errors  validator.Failures
	Dirty   bool
	Pending bool
}

// Has reports whether the field currently fails with kind.
func (fs FieldState) Has(kind validator.Kind) bool {
	return fs.Errors.Has(kind)
}

// Snapshot is an immutable view of the whole form. Fields keep their
// declaration order.
type Snapshot struct {
	FormID             uuid.UUID
	Status             Status
	Dirty              bool
	Fields             []FieldState
	CrossFieldFailures []CrossFieldFailure
}

// Field looks a field up by name.
func (s Snapshot) Field(name string) (FieldState, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldState{}, false
}

// Values returns a fresh copy of the current values.
func (s Snapshot) Values() Values {
	out := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = f.Value
	}
	return out
}

// InFlight reports whether any asynchronous check is outstanding.
func (s Snapshot) InFlight() bool {
	for _, f := range s.Fields {
		if f.Pending {
			return true
		}
	}
	return false
}

// Err returns every field error as a validator.ValidationErrors, in field
// order, or nil when no field has errors.
func (s Snapshot) Err() error {
	var errs validator.ValidationErrors
	for _, f := range s.Fields {
		for _, k := range f.Errors.Kinds() {
			errs.Add(f.Errors[k])
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// Clone returns a copy of v.
func (v Values) Clone() Values {
	return maps.Clone(v)
}
