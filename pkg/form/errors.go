package form

import "errors"

var (
	// Build-time errors, returned by New.
	ErrEmptyFieldName        = errors.New("form: field name is empty")
	ErrDuplicateField        = errors.New("form: duplicate field name")
	ErrInvalidCrossFieldRule = errors.New("form: invalid cross-field rule")
	ErrInvalidAsyncRule      = errors.New("form: invalid async rule")

	// Runtime misuse.
	ErrUnknownField     = errors.New("form: unknown field")
	ErrInvalidValueType = errors.New("form: value type does not match field")
	ErrClosed           = errors.New("form: closed")

	// Returned by SubmitValid.
	ErrFormInvalid = errors.New("form: form is invalid")
	ErrFormPending = errors.New("form: validation still pending")

	// ErrReport wraps a Reporter failure during Submit.
	ErrReport = errors.New("form: failed to report submission")
)
