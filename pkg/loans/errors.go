package loans

import "errors"

// ErrInvalidInput is wrapped by every validation failure in this package and
// by callers that reject loan inputs, so it can be matched with errors.Is.
var ErrInvalidInput = errors.New("invalid input")
