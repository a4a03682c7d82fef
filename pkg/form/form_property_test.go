//go:build property

package form_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dmitrymomot/formkit/pkg/existence"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func propertyForm(t *testing.T) *form.Form {
	t.Helper()
	checker := existence.NewStaticChecker(knownUsers, existence.WithLatency(0))
	f, err := form.New(testSpecs(checker), form.WithCrossFieldRules(form.Match("password", "confirmPassword")))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// TestFormProperties checks evaluation invariants over generated input.
func TestFormProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: matchingRequired is present exactly when both passwords are
	// well formed and differ
	properties.Property("match reflects password equality", prop.ForAll(
		func(password, confirm string) bool {
			f := propertyForm(t)
			defer f.Close()

			_ = f.SetValue("password", password)
			_ = f.SetValue("confirmPassword", confirm)

			fs, _ := f.Snapshot().Field("confirmPassword")
			return fs.Has(validator.KindMatchingRequired) == (password != confirm)
		},
		gen.RegexMatch(`^[a-zA-Z]{4,12}$`),
		gen.RegexMatch(`^[a-zA-Z]{4,12}$`),
	))

	// Property: the order of edits does not change the final state
	properties.Property("final state depends only on final values", prop.ForAll(
		func(password, confirm string) bool {
			a := propertyForm(t)
			defer a.Close()
			b := propertyForm(t)
			defer b.Close()

			_ = a.SetValue("password", password)
			_ = a.SetValue("confirmPassword", confirm)
			_ = b.SetValue("confirmPassword", confirm)
			_ = b.SetValue("password", password)

			sa, _ := a.Snapshot().Field("confirmPassword")
			sb, _ := b.Snapshot().Field("confirmPassword")
			return cmp.Equal(sa.Errors.Kinds(), sb.Errors.Kinds())
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	// Property: every name settles with no check in flight, and the result
	// matches the directory
	properties.Property("name check settles to directory membership", prop.ForAll(
		func(name string) bool {
			f := propertyForm(t)
			defer f.Close()

			_ = f.SetValue("name", name)
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			snap, err := f.Settle(ctx)
			if err != nil {
				return false
			}
			fs, _ := snap.Field("name")
			return !fs.Pending && fs.Has(validator.KindUserExists) == (name == "Thomas" || name == "Jacob" || name == "Donald" || name == "Kim")
		},
		gen.OneGenOf(gen.OneConstOf("Thomas", "Jacob", "Donald", "Kim"), gen.AlphaString()),
	))

	// Property: Reset is idempotent regardless of prior edits
	properties.Property("reset is idempotent", prop.ForAll(
		func(email string, terms bool) bool {
			f := propertyForm(t)
			defer f.Close()

			_ = f.SetValue("email", email)
			_ = f.SetValue("termsAndServices", terms)
			_ = f.Reset()
			first := f.Snapshot()
			_ = f.Reset()
			return cmp.Equal(first, f.Snapshot())
		},
		gen.AnyString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
