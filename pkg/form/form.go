package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Form is the validation pipeline for one set of fields. All methods are
// safe for concurrent use; asynchronous check results are applied under
// the same lock as user input.
type Form struct {
	id       uuid.UUID
	order    []string
	fields   map[string]*field
	cross    []CrossFieldRule
	registry *validator.Registry
	debounce time.Duration
	reporter Reporter
	log      *slog.Logger

	latest *async.Latest
	events *eventHub

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	closed        bool
	crossFailures []CrossFieldFailure
	changed       chan struct{}
}

type field struct {
	spec    FieldSpec
	value   any
	dirty   bool
	pending bool

	sync  validator.Failures
	async validator.Failures
	cross validator.Failures
}

// own returns the errors the field produces by itself, without injected
// cross-field errors.
func (fl *field) own() validator.Failures {
	if len(fl.async) == 0 {
		return fl.sync
	}
	return fl.sync.Merge(fl.async)
}

func (fl *field) errors() validator.Failures {
	return fl.sync.Merge(fl.async, fl.cross)
}

func (fl *field) status() Status {
	switch {
	case len(fl.sync)+len(fl.async)+len(fl.cross) > 0:
		return StatusInvalid
	case fl.pending:
		return StatusPending
	default:
		return StatusValid
	}
}

// New builds a form from field specs. Rule sets and cross-field references
// are checked here so that misconfiguration fails at construction; all
// problems are reported together. The initial values are evaluated as if
// Reset had been called.
func New(specs []FieldSpec, opts ...Option) (*Form, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = validator.DefaultRegistry()
	}
	if o.logger == nil {
		o.logger = logger.Discard()
	}

	fields, order, err := buildFields(o.registry, specs)
	cross, crossErr := buildCrossRules(fields, o.cross)
	if err = errors.Join(err, crossErr); err != nil {
		return nil, err
	}

	id := uuid.New()
	log := o.logger.With(logger.Component("form"), logger.FormID(id))
	if o.reporter == nil {
		o.reporter = LogReporter{Logger: log, Sensitive: sensitiveFields(specs)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	f := &Form{
		id:       id,
		order:    order,
		fields:   fields,
		cross:    cross,
		registry: o.registry,
		debounce: o.debounce,
		reporter: o.reporter,
		log:      log,
		latest:   async.NewLatest(),
		events:   newEventHub(o.eventBuffer),
		ctx:      ctx,
		cancel:   cancel,
		changed:  make(chan struct{}),
	}

	f.mu.Lock()
	f.resetLocked()
	f.mu.Unlock()

	log.Debug("form built", slog.Int("fields", len(order)), slog.Int("cross_rules", len(cross)))
	return f, nil
}

func buildFields(reg *validator.Registry, specs []FieldSpec) (map[string]*field, []string, error) {
	fields := make(map[string]*field, len(specs))
	order := make([]string, 0, len(specs))

	var errs []error
	for i, spec := range specs {
		if spec.Name == "" {
			errs = append(errs, fmt.Errorf("field %d: %w", i, ErrEmptyFieldName))
			continue
		}
		if _, dup := fields[spec.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateField, spec.Name))
			continue
		}
		if !validInitial(spec.Initial) {
			errs = append(errs, fmt.Errorf("field %s: %w: initial value %T", spec.Name, ErrInvalidValueType, spec.Initial))
		}
		if err := reg.Validate(spec.Rules...); err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", spec.Name, err))
		}
		if spec.Async != nil {
			if err := spec.Async.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("field %s: %w: %w", spec.Name, ErrInvalidAsyncRule, err))
			}
		}

		spec.Rules = append([]validator.Rule(nil), spec.Rules...)
		fields[spec.Name] = &field{spec: spec, value: spec.Initial}
		order = append(order, spec.Name)
	}
	return fields, order, errors.Join(errs...)
}

func buildCrossRules(fields map[string]*field, rules []CrossFieldRule) ([]CrossFieldRule, error) {
	out := make([]CrossFieldRule, 0, len(rules))

	var errs []error
	for _, r := range rules {
		if r.Kind == "" {
			r.Kind = validator.KindMatchingRequired
		}
		switch {
		case r.Predicate == nil:
			errs = append(errs, fmt.Errorf("%w: %s has no predicate", ErrInvalidCrossFieldRule, r))
		case r.Primary == r.Dependent:
			errs = append(errs, fmt.Errorf("%w: %s relates a field to itself", ErrInvalidCrossFieldRule, r))
		}
		for _, name := range []string{r.Primary, r.Dependent} {
			if _, ok := fields[name]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s references %w %q", ErrInvalidCrossFieldRule, r, ErrUnknownField, name))
			}
		}
		out = append(out, r)
	}
	return out, errors.Join(errs...)
}

func sensitiveFields(specs []FieldSpec) []string {
	var names []string
	for _, s := range specs {
		if s.Sensitive {
			names = append(names, s.Name)
		}
	}
	return names
}

// ID returns the form instance identifier.
func (f *Form) ID() uuid.UUID {
	return f.id
}

// SetValue stores value on the named field and runs one evaluation pass:
// the field's synchronous rules, a fresh asynchronous check if they pass,
// and every cross-field rule. Statuses are recomputed before it returns.
func (f *Form) SetValue(name string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	fl, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if !acceptsValue(fl.spec.Initial, value) {
		return fmt.Errorf("%w: %s does not accept %T", ErrInvalidValueType, name, value)
	}

	fl.value = value
	fl.dirty = true
	started := f.validateFieldLocked(fl)
	f.aggregateLocked()

	f.log.Debug("value changed",
		logger.Field(name),
		logger.Status(fl.status().String()),
		logger.Kinds(fl.errors().Kinds()),
	)
	f.publishLocked(EventValueChanged, name)
	if started {
		f.publishLocked(EventCheckStarted, name)
	}
	return nil
}

// Value returns the current value of a field.
func (f *Form) Value(name string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fl, ok := f.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return fl.value, nil
}

// Snapshot returns an immutable view of the form.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Reset restores every field to its initial value, cancels outstanding
// checks, clears all errors and dirty flags, and re-evaluates the form as
// at construction. Calling it repeatedly yields the same state.
func (f *Form) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	started := f.resetLocked()
	f.log.Debug("form reset", logger.Status(f.statusLocked().String()))
	f.publishLocked(EventReset, "")
	for _, name := range started {
		f.publishLocked(EventCheckStarted, name)
	}
	return nil
}

// Settle blocks until no asynchronous check is in flight and returns the
// resulting snapshot. It returns early with ctx's error.
func (f *Form) Settle(ctx context.Context) (Snapshot, error) {
	for {
		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			return Snapshot{}, ErrClosed
		}
		snap := f.snapshotLocked()
		changed := f.changed
		f.mu.Unlock()

		if !snap.InFlight() {
			return snap, nil
		}
		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case <-changed:
		}
	}
}

// Subscribe streams form events until ctx ends, the subscription is
// closed, or the form is closed.
func (f *Form) Subscribe(ctx context.Context) *Subscription {
	return f.events.subscribe(ctx)
}

// Close tears the form down: outstanding checks are cancelled and their
// results dropped, subscriptions end, and further calls return ErrClosed.
func (f *Form) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	if n := f.latest.Outstanding(); n > 0 {
		f.log.Debug("cancelling checks on close", slog.Int("outstanding", n))
	}
	f.latest.CancelAll()
	f.cancel()
	close(f.changed)
	f.mu.Unlock()

	f.events.close()
	f.log.Debug("form closed")
	return nil
}

// resetLocked returns the fields whose checks were restarted.
func (f *Form) resetLocked() []string {
	f.latest.CancelAll()
	for _, name := range f.order {
		fl := f.fields[name]
		fl.value = fl.spec.Initial
		fl.dirty = false
		fl.pending = false
		fl.sync, fl.async, fl.cross = nil, nil, nil
	}
	var started []string
	for _, name := range f.order {
		if f.validateFieldLocked(f.fields[name]) {
			started = append(started, name)
		}
	}
	f.aggregateLocked()
	return started
}

func (f *Form) snapshotLocked() Snapshot {
	snap := Snapshot{
		FormID:             f.id,
		Status:             f.statusLocked(),
		Fields:             make([]FieldState, 0, len(f.order)),
		CrossFieldFailures: append([]CrossFieldFailure(nil), f.crossFailures...),
	}
	for _, name := range f.order {
		fl := f.fields[name]
		snap.Dirty = snap.Dirty || fl.dirty
		snap.Fields = append(snap.Fields, FieldState{
			Name:    name,
			Value:   fl.value,
			Status:  fl.status(),
			Errors:  fl.errors(),
			Dirty:   fl.dirty,
			Pending: fl.pending,
		})
	}
	return snap
}

func (f *Form) statusLocked() Status {
	invalid := len(f.crossFailures) > 0
	pending := false
	for _, name := range f.order {
		switch f.fields[name].status() {
		case StatusInvalid:
			invalid = true
		case StatusPending:
			pending = true
		}
	}
	switch {
	case invalid:
		return StatusInvalid
	case pending:
		return StatusPending
	default:
		return StatusValid
	}
}

// publishLocked wakes Settle waiters and notifies subscribers.
func (f *Form) publishLocked(typ EventType, name string) {
	close(f.changed)
	f.changed = make(chan struct{})
	f.events.publish(Event{Type: typ, Field: name, Snapshot: f.snapshotLocked()})
}
