package signal

import "errors"

// ErrUnspecified is the failure recorded when the host reports an error
// without a cause.
var ErrUnspecified = errors.New("host reported failure without a cause")
