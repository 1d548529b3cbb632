package gate

import "errors"

// ErrValidationUnreachable indicates the session-validation endpoint could
// not be reached. It never propagates to the request; the gate degrades to
// a redirect and records the cause in the log.
var ErrValidationUnreachable = errors.New("gate.validation_unreachable")
