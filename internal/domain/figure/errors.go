package figure

import "errors"

// Sentinel kinds for figure errors.
var (
	ErrUnknownKind = errors.New("unknown chart kind")
)
