package usage

import "errors"

// ErrLimitReached indicates the user exhausted the daily quota for a
// resource kind. Callers surface the Decision counts alongside it.
var ErrLimitReached = errors.New("daily limit reached")
