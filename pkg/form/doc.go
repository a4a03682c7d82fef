// Package form implements a reactive validation pipeline for a fixed set of
// fields.
//
// A Form is built from FieldSpec declarations. Each field carries
// synchronous rules evaluated through a validator.Registry, at most one
// asynchronous rule, and the form may carry cross-field rules such as
// Match. Every SetValue runs one evaluation pass:
//
//  1. the field's synchronous rules are evaluated;
//  2. if they pass and the field has an asynchronous rule, a new check is
//     started and any older check for that field is superseded;
//  3. cross-field rules are recomputed from the fields' own errors.
//
// A superseded check may still finish, but its result is discarded, so the
// field always reflects its latest value. Field and form statuses are
// derived: invalid if any error is present, otherwise pending while a
// check is in flight, otherwise valid.
//
// Basic usage:
//
//	f, err := form.New([]form.FieldSpec{
//	    form.Text("name", validator.Required()).
//	        WithAsync(existence.Rule(checker)),
//	    form.Text("password", validator.Required(), validator.MinLength(4)),
//	    form.Text("confirmPassword", validator.Required()),
//	}, form.WithCrossFieldRules(form.Match("password", "confirmPassword")))
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	_ = f.SetValue("name", "Alice")
//	snap, err := f.Settle(ctx)
//
// Submit hands the current values to a Reporter regardless of status.
// SubmitValid refuses invalid or pending forms.
//
// Subscribe streams an Event per state change. Delivery never blocks the
// form: a subscriber whose buffer is full misses events.
package form
