package logger

import (
	"log/slog"
	"strconv"
)

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// FormID records the form instance identifier under the key "form_id".
func FormID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("form_id", id)
}

// SubmissionID records a submission identifier under the key "submission_id".
func SubmissionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("submission_id", id)
}

func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Kinds records failing rule kinds under the key "kinds".
func Kinds[K ~string](kinds []K) slog.Attr {
	ss := make([]string, len(kinds))
	for i, k := range kinds {
		ss[i] = string(k)
	}
	return slog.Any("kinds", ss)
}

func Status(s string) slog.Attr {
	return slog.String("status", s)
}

// Generation records an async check generation under the key "generation".
func Generation(n uint64) slog.Attr {
	return slog.Uint64("generation", n)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
