package currency

import "errors"

// ErrInvalidAmount indicates a raw value that is not a decimal amount.
var ErrInvalidAmount = errors.New("invalid currency amount")
