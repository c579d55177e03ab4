package mockdata

import "errors"

// Sentinel kinds for generator errors.
var (
	ErrInvalidConfig = errors.New("invalid generator config")
	ErrWrite         = errors.New("write mock dataset")
)
