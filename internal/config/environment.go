package config

import (
	"fmt"
	"strings"
)

type Environment string

const (
	EnvironmentLocal      Environment = "local"
	EnvironmentProduction Environment = "production"
)

const EnvironmentVariable = "APP_ENVIRONMENT"

func ParseEnvironment(s string) (Environment, error) {
	switch Environment(strings.ToLower(s)) {
	case EnvironmentLocal:
		return EnvironmentLocal, nil
	case EnvironmentProduction:
		return EnvironmentProduction, nil
	default:
		return "", fmt.Errorf("%w: %s is not a supported environment", ErrUnsupportedEnvironment, s)
	}
}
