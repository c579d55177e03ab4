package repository

import "errors"

// Sentinel kinds for loading errors.
var (
	ErrOpenDataset   = errors.New("open dataset failed")
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptyDataset  = errors.New("dataset has no header")
	ErrReadDataset   = errors.New("read dataset failed")
)
