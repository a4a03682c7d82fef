package signup

import "errors"

var (
	ErrUnknownOccupation = errors.New("signup: unknown occupation")
	ErrInvalidPayload    = errors.New("signup: invalid payload")
)
