package verifier

import "errors"

// ErrShape is returned for malformed per-component ranges.
var ErrShape = errors.New("verifier: malformed ranges")
