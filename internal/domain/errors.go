package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName  = errors.New("invalid subscriber name")
	ErrInvalidEmail = errors.New("invalid subscriber email")
)

// ValidationError reports which field was rejected and why.
type ValidationError struct {
	Field  string
	Reason string
	kind   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

func invalidName(reason string) error {
	return &ValidationError{Field: "name", Reason: reason, kind: ErrInvalidName}
}

func invalidEmail(reason string) error {
	return &ValidationError{Field: "email", Reason: reason, kind: ErrInvalidEmail}
}
