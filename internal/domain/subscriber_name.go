package domain

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

const MaxNameLength = 256

const forbiddenNameCharacters = `/()"<>\{}`

// SubscriberName is a trimmed, non-empty name that passed ParseSubscriberName.
type SubscriberName struct {
	value string
}

func ParseSubscriberName(raw string) (SubscriberName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SubscriberName{}, invalidName("name is empty")
	}

	// Length is counted in user-perceived characters, not bytes.
	if uniseg.GraphemeClusterCount(trimmed) > MaxNameLength {
		return SubscriberName{}, invalidName("name is too long")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) || strings.ContainsRune(forbiddenNameCharacters, r) {
			return SubscriberName{}, invalidName("name contains a forbidden character")
		}
	}

	return SubscriberName{value: trimmed}, nil
}

func (n SubscriberName) String() string {
	return n.value
}
