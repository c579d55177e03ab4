package model

import "errors"

// ErrUnknownRegion reports a region code that is not offered.
var ErrUnknownRegion = errors.New("unknown region")
