package contract

import "errors"

// ErrInvalidArgument covers domain validation failures: out-of-enumeration
// employment type or debt flag, negative counts or amounts.
var ErrInvalidArgument = errors.New("invalid argument")
