package form

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Submission is what a Reporter receives from Submit.
type Submission struct {
	ID          uuid.UUID
	FormID      uuid.UUID
	Status      Status
	Values      Values
	SubmittedAt time.Time
}

// Reporter receives committed submissions.
type Reporter interface {
	Report(ctx context.Context, s Submission) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, s Submission) error

func (f ReporterFunc) Report(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// RedactedValue replaces sensitive values in logs.
const RedactedValue = "******"

// LogReporter writes each submission as one structured log record.
// Non-empty values of the Sensitive fields are logged as RedactedValue.
type LogReporter struct {
	Logger    *slog.Logger
	Sensitive []string
}

func (r LogReporter) Report(ctx context.Context, s Submission) error {
	attrs := make([]any, 0, len(s.Values))
	for k, v := range s.Values {
		if slices.Contains(r.Sensitive, k) && !isZeroValue(v) {
			v = RedactedValue
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	r.Logger.InfoContext(ctx, "form submitted",
		logger.FormID(s.FormID),
		logger.SubmissionID(s.ID),
		logger.Status(s.Status.String()),
		slog.Group("values", attrs...),
	)
	return nil
}

// Submit serialises the current values and hands them to the Reporter,
// whatever the form status. It does not block an invalid or pending form:
// callers that need that guarantee must check the status first or use
// SubmitValid. The returned values are a copy; the error is non-nil only
// when reporting fails.
func (f *Form) Submit(ctx context.Context) (Values, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrClosed
	}
	snap := f.snapshotLocked()
	f.publishLocked(EventSubmitted, "")
	f.mu.Unlock()

	return f.report(ctx, snap)
}

// SubmitValid submits only a valid form. An invalid form yields
// ErrFormInvalid joined with its field errors; a form with checks in
// flight yields ErrFormPending.
func (f *Form) SubmitValid(ctx context.Context) (Values, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrClosed
	}
	snap := f.snapshotLocked()
	switch snap.Status {
	case StatusInvalid:
		f.mu.Unlock()
		return nil, errors.Join(ErrFormInvalid, snap.Err())
	case StatusPending:
		f.mu.Unlock()
		return nil, ErrFormPending
	}
	f.publishLocked(EventSubmitted, "")
	f.mu.Unlock()

	return f.report(ctx, snap)
}

func (f *Form) report(ctx context.Context, snap Snapshot) (Values, error) {
	sub := Submission{
		ID:          uuid.New(),
		FormID:      f.id,
		Status:      snap.Status,
		Values:      snap.Values(),
		SubmittedAt: time.Now().UTC(),
	}

	if sub.Status != StatusValid {
		f.log.WarnContext(ctx, "submitting form that is not valid",
			logger.SubmissionID(sub.ID),
			logger.Status(sub.Status.String()),
		)
	}

	if err := f.reporter.Report(ctx, sub); err != nil {
		f.log.ErrorContext(ctx, "submission report failed", logger.SubmissionID(sub.ID), logger.Error(err))
		return sub.Values.Clone(), errors.Join(ErrReport, err)
	}
	return sub.Values.Clone(), nil
}

func isZeroValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	}
	return false
}
