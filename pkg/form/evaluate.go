package form

import (
	"context"
	"time"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// validateFieldLocked re-runs the field's synchronous rules and restarts
// its asynchronous check. The check only runs when the synchronous rules
// pass; either way the previous check for the field is superseded. It
// reports whether a check was started. Callers publish EventCheckStarted
// once the pass is aggregated.
func (f *Form) validateFieldLocked(fl *field) bool {
	name := fl.spec.Name
	fl.sync = f.registry.Evaluate(name, fl.value, fl.spec.Rules)
	fl.async = nil

	if fl.spec.Async == nil {
		return false
	}
	if len(fl.sync) > 0 {
		if fl.pending {
			f.log.Debug("check cancelled by failing rules", logger.Field(name))
		}
		f.latest.Cancel(name)
		fl.pending = false
		return false
	}
	f.startCheckLocked(fl)
	return true
}

func (f *Form) startCheckLocked(fl *field) {
	name := fl.spec.Name
	rule := *fl.spec.Async
	debounce := f.debounce

	ticket, ctx := f.latest.Begin(f.ctx, name)
	fl.pending = true

	fut := async.Async(ctx, fl.value, func(ctx context.Context, v any) (bool, error) {
		if err := wait(ctx, debounce); err != nil {
			return false, err
		}
		return rule.Check(ctx, v)
	})
	async.Then(fut, func(failed bool, err error) {
		f.resolveCheck(ticket, rule.Kind, failed, err)
	})

	f.log.Debug("check started", logger.Field(name), logger.Generation(ticket.Generation))
}

// resolveCheck applies a finished check if it is still the newest one for
// its field. Superseded results are dropped.
func (f *Form) resolveCheck(t async.Ticket, kind validator.Kind, failed bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	if !f.latest.Finish(t) {
		f.log.Debug("stale check discarded", logger.Field(t.Key), logger.Generation(t.Generation))
		f.publishLocked(EventCheckDiscarded, t.Key)
		return
	}

	fl := f.fields[t.Key]
	fl.pending = false
	switch {
	case err != nil:
		fl.async = validator.Failures{
			validator.KindCheckFailed: f.registry.Describe(t.Key, validator.KindCheckFailed, fl.value),
		}
		f.log.Warn("check failed", logger.Field(t.Key), logger.Generation(t.Generation), logger.Error(err))
	case failed:
		fl.async = validator.Failures{
			kind: f.registry.Describe(t.Key, kind, fl.value),
		}
	default:
		fl.async = nil
	}
	f.aggregateLocked()

	f.log.Debug("check resolved",
		logger.Field(t.Key),
		logger.Generation(t.Generation),
		logger.Status(fl.status().String()),
	)
	f.publishLocked(EventCheckResolved, t.Key)
}

// aggregateLocked recomputes every cross-field rule from the fields' own
// errors, so injected errors never feed back into the next pass.
func (f *Form) aggregateLocked() {
	for _, name := range f.order {
		f.fields[name].cross = nil
	}
	f.crossFailures = f.crossFailures[:0]

	for _, r := range f.cross {
		primary, dependent := f.fields[r.Primary], f.fields[r.Dependent]
		if dependent.own().HasOtherThan(r.Kind) {
			continue
		}
		if r.Predicate(primary.value, dependent.value) {
			continue
		}
		if dependent.cross == nil {
			dependent.cross = make(validator.Failures)
		}
		dependent.cross[r.Kind] = f.registry.Describe(r.Dependent, r.Kind, dependent.value)
		f.crossFailures = append(f.crossFailures, CrossFieldFailure{
			Primary:   r.Primary,
			Dependent: r.Dependent,
			Kind:      r.Kind,
		})
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
