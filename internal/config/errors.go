package config

import "errors"

var (
	ErrUnsupportedEnvironment = errors.New("unsupported environment")
	ErrReadingConfig          = errors.New("failed to read configuration file")
	ErrParsingConfig          = errors.New("failed to parse configuration")
	ErrInvalidConfig          = errors.New("invalid configuration")
)
