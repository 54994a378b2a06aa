package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SubscriberEmail is a syntactically valid address. No network checks are made.
type SubscriberEmail struct {
	value string
}

func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SubscriberEmail{}, invalidEmail("email is empty")
	}

	local, domainPart, found := strings.Cut(trimmed, "@")
	if !found || strings.Contains(domainPart, "@") {
		return SubscriberEmail{}, invalidEmail("email must contain exactly one @")
	}
	if local == "" || domainPart == "" {
		return SubscriberEmail{}, invalidEmail("email local and domain parts must not be empty")
	}

	if err := validate.Var(trimmed, "email"); err != nil {
		return SubscriberEmail{}, invalidEmail(trimmed + " is not a valid email address")
	}

	return SubscriberEmail{value: trimmed}, nil
}

func (e SubscriberEmail) String() string {
	return e.value
}
