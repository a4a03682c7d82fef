package existence

import "errors"

// ErrUnsupportedValue is returned when the checked value is not a string.
var ErrUnsupportedValue = errors.New("existence: value is not a string")
