package form_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/existence"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

var knownUsers = []string{"Thomas", "Jacob", "Donald", "Kim"}

func testSpecs(checker existence.Checker) []form.FieldSpec {
	return []form.FieldSpec{
		form.Text("name", validator.Required(), validator.AlphanumericWithSpaces()).
			WithAsync(existence.Rule(checker)),
		form.Text("email", validator.Required(), validator.Email(), validator.EmailPattern()),
		form.Text("password", validator.Required(), validator.MinLength(4), validator.MaxLength(12)),
		form.Text("confirmPassword", validator.Required(), validator.Min(4)),
		form.Bool("coupon"),
		form.Text("occupation"),
		form.Bool("termsAndServices", validator.RequiredTrue()),
	}
}

func newTestForm(t *testing.T, checker existence.Checker, opts ...form.Option) *form.Form {
	t.Helper()
	if checker == nil {
		checker = existence.NewStaticChecker(knownUsers, existence.WithLatency(50*time.Millisecond))
	}
	opts = append([]form.Option{form.WithCrossFieldRules(form.Match("password", "confirmPassword"))}, opts...)
	f, err := form.New(testSpecs(checker), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func settle(t *testing.T, f *form.Form) form.Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	snap, err := f.Settle(ctx)
	require.NoError(t, err)
	return snap
}

func field(t *testing.T, snap form.Snapshot, name string) form.FieldState {
	t.Helper()
	fs, ok := snap.Field(name)
	require.True(t, ok, "field %s not in snapshot", name)
	return fs
}

func kinds(fs form.FieldState) []validator.Kind {
	if len(fs.Errors) == 0 {
		return nil
	}
	return fs.Errors.Kinds()
}

func fillValid(t *testing.T, f *form.Form) {
	t.Helper()
	require.NoError(t, f.SetValue("name", "Alice"))
	require.NoError(t, f.SetValue("email", "alice@example.com"))
	require.NoError(t, f.SetValue("password", "secret"))
	require.NoError(t, f.SetValue("confirmPassword", "secret"))
	require.NoError(t, f.SetValue("termsAndServices", true))
}

func TestNew_InitialState(t *testing.T) {
	t.Parallel()
	f := newTestForm(t, nil)

	snap := f.Snapshot()
	assert.Equal(t, f.ID(), snap.FormID)
	assert.Equal(t, form.StatusInvalid, snap.Status)
	assert.False(t, snap.Dirty)
	assert.False(t, snap.InFlight())
	assert.Empty(t, snap.CrossFieldFailures)

	tests := []struct {
		field string
		want  []validator.Kind
	}{
		{"name", []validator.Kind{validator.KindRequired}},
		{"email", []validator.Kind{validator.KindRequired}},
		{"password", []validator.Kind{validator.KindRequired}},
		{"confirmPassword", []validator.Kind{validator.KindRequired}},
		{"coupon", nil},
		{"occupation", nil},
		{"termsAndServices", []validator.Kind{validator.KindRequiredTrue}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kinds(field(t, snap, tt.field)), tt.field)
	}

	names := make([]string, 0, len(snap.Fields))
	for _, fs := range snap.Fields {
		names = append(names, fs.Name)
	}
	assert.Equal(t, []string{"name", "email", "password", "confirmPassword", "coupon", "occupation", "termsAndServices"}, names)
}

func TestNew_BuildErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		specs []form.FieldSpec
		opts  []form.Option
		want  []error
	}{
		{
			name:  "empty field name",
			specs: []form.FieldSpec{form.Text("")},
			want:  []error{form.ErrEmptyFieldName},
		},
		{
			name:  "duplicate field",
			specs: []form.FieldSpec{form.Text("a"), form.Bool("a")},
			want:  []error{form.ErrDuplicateField},
		},
		{
			name:  "unknown rule kind",
			specs: []form.FieldSpec{form.Text("a", validator.Rule{Kind: "nope"})},
			want:  []error{validator.ErrUnknownRule},
		},
		{
			name:  "unsupported initial value",
			specs: []form.FieldSpec{{Name: "a", Initial: 42}},
			want:  []error{form.ErrInvalidValueType},
		},
		{
			name:  "async rule without check",
			specs: []form.FieldSpec{form.Text("a").WithAsync(validator.AsyncRule{Kind: validator.KindUserExists})},
			want:  []error{form.ErrInvalidAsyncRule},
		},
		{
			name:  "cross-field rule on unknown field",
			specs: []form.FieldSpec{form.Text("a")},
			opts:  []form.Option{form.WithCrossFieldRules(form.Match("a", "b"))},
			want:  []error{form.ErrInvalidCrossFieldRule, form.ErrUnknownField},
		},
		{
			name:  "cross-field rule on itself",
			specs: []form.FieldSpec{form.Text("a")},
			opts:  []form.Option{form.WithCrossFieldRules(form.Match("a", "a"))},
			want:  []error{form.ErrInvalidCrossFieldRule},
		},
		{
			name:  "problems are joined",
			specs: []form.FieldSpec{form.Text(""), form.Text("b", validator.MinLength(-1))},
			opts:  []form.Option{form.WithCrossFieldRules(form.CrossFieldRule{Primary: "b", Dependent: "c"})},
			want:  []error{form.ErrEmptyFieldName, validator.ErrInvalidRule, form.ErrInvalidCrossFieldRule},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, err := form.New(tt.specs, tt.opts...)
			assert.Nil(t, f)
			require.Error(t, err)
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestSetValue_SyncRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		value any
		want  []validator.Kind
	}{
		{"required only on empty", "email", "", []validator.Kind{validator.KindRequired}},
		{"email accepted", "email", "jane@example.com", nil},
		{"email without tld fails pattern only", "email", "a@b", []validator.Kind{validator.KindPattern}},
		{"email garbage", "email", "not an email", []validator.Kind{validator.KindEmail, validator.KindPattern}},
		{"name underscore", "name", "John_Doe", []validator.Kind{validator.KindPattern}},
		{"password too short", "password", "abc", []validator.Kind{validator.KindMinLength}},
		{"password too long", "password", "abcdefghijklm", []validator.Kind{validator.KindMaxLength}},
		{"password bounds inclusive", "password", "abcdefghijkl", nil},
		{"terms accepted", "termsAndServices", true, nil},
		{"terms declined", "termsAndServices", false, []validator.Kind{validator.KindRequiredTrue}},
		{"coupon has no rules", "coupon", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newTestForm(t, nil)

			require.NoError(t, f.SetValue(tt.field, tt.value))
			fs := field(t, f.Snapshot(), tt.field)
			assert.Equal(t, tt.want, kinds(fs))
			assert.True(t, fs.Dirty)
			assert.Equal(t, tt.value, fs.Value)
			if tt.want != nil {
				assert.Equal(t, form.StatusInvalid, fs.Status)
			}
		})
	}
}

func TestSetValue_Misuse(t *testing.T) {
	t.Parallel()
	f := newTestForm(t, nil)

	assert.ErrorIs(t, f.SetValue("nickname", "x"), form.ErrUnknownField)
	assert.ErrorIs(t, f.SetValue("coupon", "yes"), form.ErrInvalidValueType)
	assert.ErrorIs(t, f.SetValue("email", true), form.ErrInvalidValueType)

	_, err := f.Value("nickname")
	assert.ErrorIs(t, err, form.ErrUnknownField)

	assert.False(t, f.Snapshot().Dirty, "rejected values must not mark the form dirty")
}

func TestSetValue_RoundTrip(t *testing.T) {
	t.Parallel()
	f := newTestForm(t, nil)

	require.NoError(t, f.SetValue("occupation", "Sales Representative"))
	require.NoError(t, f.SetValue("coupon", true))

	v, err := f.Value("occupation")
	require.NoError(t, err)
	assert.Equal(t, "Sales Representative", v)

	values := f.Snapshot().Values()
	assert.Equal(t, true, values["coupon"])
	assert.Equal(t, "", values["email"])
	assert.Len(t, values, 7)
}

func TestAsync_ExistingUser(t *testing.T) {
	t.Parallel()
	f := newTestForm(t, nil)

	require.NoError(t, f.SetValue("name", "Thomas"))
	fs := field(t, f.Snapshot(), "name")
	assert.Equal(t, form.StatusPending, fs.Status)
	assert.True(t, fs.Pending)

	snap := settle(t, f)
	fs = field(t, snap, "name")
	assert.Equal(t, []validator.Kind{validator.KindUserExists}, kinds(fs))
	assert.Equal(t, form.StatusInvalid, fs.Status)
	assert.False(t, fs.Pending)
}

func TestAsync_LatestValueWins(t *testing.T) {
	t.Parallel()
	f := newTestForm(t, nil)

	require.NoError(t, f.SetValue("name", "Thomas"))
	require.NoError(t, f.SetValue("name", "Alice"))

	fs := field(t, settle(t, f), "name")
	assert.Equal(t, "Alice", fs.Value)
	assert.Empty(t, kinds(fs))
	assert.Equal(t, form.StatusValid, fs.Status)

	// A late result for Thomas must not surface.
	time.Sleep(100 * time.Millisecond)
	fs = field(t, f.Snapshot(), "name")
	assert.False(t, fs.Has(validator.KindUserExists))
}

func TestAsync_SupersededBySyncFailure(t *testing.T) {
	t.Parallel()
	f := newTestForm(t, nil, form.WithEventBuffer(32))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := f.Subscribe(ctx)

	require.NoError(t, f.SetValue("name", "Thomas"))
	require.NoError(t, f.SetValue("name", "Thomas_"))

	fs := field(t, f.Snapshot(), "name")
	assert.Equal(t, []validator.Kind{validator.KindPattern}, kinds(fs))
	assert.False(t, fs.Pending)

	require.Eventually(t, func() bool {
		for {
			select {
			case ev := <-sub.C():
				if ev.Type == form.EventCheckDiscarded && ev.Field == "name" {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 5*time.Millisecond)

	fs = field(t, f.Snapshot(), "name")
	assert.Equal(t, []validator.Kind{validator.KindPattern}, kinds(fs))
}

func TestAsync_CheckerError(t *testing.T) {
	t.Parallel()
	down := existence.CheckerFunc(func(context.Context, string) (bool, error) {
		return false, errors.New("directory unavailable")
	})
	f := newTestForm(t, down)

	require.NoError(t, f.SetValue("name", "Alice"))
	fs := field(t, settle(t, f), "name")
	assert.Equal(t, []validator.Kind{validator.KindCheckFailed}, kinds(fs))
	assert.Equal(t, "validation.check_failed", fs.Errors[validator.KindCheckFailed].TranslationKey)
}

func TestAsync_Debounce(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	counting := existence.CheckerFunc(func(_ context.Context, name string) (bool, error) {
		calls.Add(1)
		return name == "Kim", nil
	})
	f := newTestForm(t, counting, form.WithDebounce(50*time.Millisecond))

	for _, v := range []string{"K", "Ki", "Kim"} {
		require.NoError(t, f.SetValue("name", v))
	}

	fs := field(t, settle(t, f), "name")
	assert.True(t, fs.Has(validator.KindUserExists))
	assert.Equal(t, int32(1), calls.Load())
}

func TestSettle_ContextDeadline(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	blocking := existence.CheckerFunc(func(ctx context.Context, _ string) (bool, error) {
		select {
		case <-release:
			return false, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	})
	f := newTestForm(t, blocking)
	require.NoError(t, f.SetValue("name", "Alice"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	snap, err := f.Settle(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, form.StatusPending, field(t, snap, "name").Status)

	close(release)
	assert.Equal(t, form.StatusValid, field(t, settle(t, f), "name").Status)
}

func TestCrossField_Match(t *testing.T) {
	t.Parallel()
	f := newTestForm(t, nil)

	require.NoError(t, f.SetValue("password", "abcd"))
	require.NoError(t, f.SetValue("confirmPassword", "abce"))

	snap := f.Snapshot()
	confirm := field(t, snap, "confirmPassword")
	assert.Equal(t, []validator.Kind{validator.KindMatchingRequired}, kinds(confirm))
	assert.Equal(t, []form.CrossFieldFailure{{
		Primary:   "password",
		Dependent: "confirmPassword",
		Kind:      validator.KindMatchingRequired,
	}}, snap.CrossFieldFailures)
	assert.Empty(t, kinds(field(t, snap, "password")))

	require.NoError(t, f.SetValue("confirmPassword", "abcd"))
	snap = f.Snapshot()
	assert.Empty(t, kinds(field(t, snap, "confirmPassword")))
	assert.Empty(t, snap.CrossFieldFailures)

	// Changing the primary re-evaluates the dependent.
	require.NoError(t, f.SetValue("password", "abcdx"))
	assert.True(t, field(t, f.Snapshot(), "confirmPassword").Has(validator.KindMatchingRequired))

	require.NoError(t, f.SetValue("password", "abcd"))
	assert.Empty(t, kinds(field(t, f.Snapshot(), "confirmPassword")))
}

func TestCrossField_SkippedWhileDependentInvalid(t *testing.T) {
	t.Parallel()
	f := newTestForm(t, nil)

	require.NoError(t, f.SetValue("password", "abcd"))
	require.NoError(t, f.SetValue("confirmPassword", ""))

	snap := f.Snapshot()
	assert.Equal(t, []validator.Kind{validator.KindRequired}, kinds(field(t, snap, "confirmPassword")))
	assert.Empty(t, snap.CrossFieldFailures)

	// A numeric value below the bound fails min and hides the mismatch.
	require.NoError(t, f.SetValue("confirmPassword", "3"))
	assert.Equal(t, []validator.Kind{validator.KindMin}, kinds(field(t, f.Snapshot(), "confirmPassword")))

	// Only the leading number counts.
	for _, v := range []string{"3abc", "0x3"} {
		require.NoError(t, f.SetValue("confirmPassword", v))
		assert.Equal(t, []validator.Kind{validator.KindMin}, kinds(field(t, f.Snapshot(), "confirmPassword")), v)
	}

	require.NoError(t, f.SetValue("confirmPassword", "-inf"))
	snap = f.Snapshot()
	assert.Equal(t, []validator.Kind{validator.KindMatchingRequired}, kinds(field(t, snap, "confirmPassword")))
	assert.Len(t, snap.CrossFieldFailures, 1)
}

func TestReset(t *testing.T) {
	t.Parallel()
	f := newTestForm(t, nil)
	initial := f.Snapshot()

	fillValid(t, f)
	require.NoError(t, f.SetValue("coupon", true))
	require.NoError(t, f.Reset())

	first := f.Snapshot()
	assert.False(t, first.Dirty)
	assert.False(t, first.InFlight())
	if diff := cmp.Diff(initial, first); diff != "" {
		t.Errorf("reset state differs from construction (-want +got):\n%s", diff)
	}

	require.NoError(t, f.Reset())
	if diff := cmp.Diff(first, f.Snapshot()); diff != "" {
		t.Errorf("reset is not idempotent (-first +second):\n%s", diff)
	}

	other := newTestForm(t, nil)
	if diff := cmp.Diff(other.Snapshot(), first, cmpopts.IgnoreFields(form.Snapshot{}, "FormID")); diff != "" {
		t.Errorf("reset differs from a fresh form (-fresh +reset):\n%s", diff)
	}
}

func TestReset_DropsInFlightCheck(t *testing.T) {
	t.Parallel()
	f := newTestForm(t, nil)

	require.NoError(t, f.SetValue("name", "Thomas"))
	require.NoError(t, f.Reset())

	time.Sleep(120 * time.Millisecond)
	fs := field(t, f.Snapshot(), "name")
	assert.Equal(t, []validator.Kind{validator.KindRequired}, kinds(fs))
	assert.Equal(t, "", fs.Value)
}

func TestFormStatus(t *testing.T) {
	t.Parallel()
	f := newTestForm(t, existence.NewStaticChecker(knownUsers, existence.WithLatency(300*time.Millisecond)))

	fillValid(t, f)
	assert.Equal(t, form.StatusPending, f.Snapshot().Status)
	assert.Equal(t, form.StatusValid, settle(t, f).Status)

	require.NoError(t, f.SetValue("termsAndServices", false))
	assert.Equal(t, form.StatusInvalid, f.Snapshot().Status)
}

func TestClose(t *testing.T) {
	t.Parallel()
	checker := existence.NewStaticChecker(knownUsers, existence.WithLatency(time.Second))
	f, err := form.New(testSpecs(checker))
	require.NoError(t, err)

	sub := f.Subscribe(context.Background())
	require.NoError(t, f.SetValue("name", "Alice"))
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	assert.ErrorIs(t, f.SetValue("name", "Bob"), form.ErrClosed)
	assert.ErrorIs(t, f.Reset(), form.ErrClosed)
	_, err = f.Settle(context.Background())
	assert.ErrorIs(t, err, form.ErrClosed)
	_, err = f.Submit(context.Background())
	assert.ErrorIs(t, err, form.ErrClosed)

	for range sub.C() {
	}
	_, open := <-sub.C()
	assert.False(t, open)
}
