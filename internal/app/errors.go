package service

import (
	"errors"

	"github.com/okian/wildfire/internal/domain/model"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrUnknownRegion = model.ErrUnknownRegion
)
