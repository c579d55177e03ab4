package render

import "errors"

var (
	// ErrUnsupportedFormat is returned for image formats other than svg and png.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrRender wraps failures inside the chart library.
	ErrRender = errors.New("render chart")
)
