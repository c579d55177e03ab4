package config

import "errors"

var (
	// ErrLoadConfig wraps failures reading the YAML file or the environment.
	ErrLoadConfig = errors.New("load config")

	// ErrInvalidConfig wraps settings that loaded but cannot be used.
	ErrInvalidConfig = errors.New("invalid config")
)
