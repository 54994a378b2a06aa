package domain_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-go/internal/domain"
)

func TestParseSubscriberName_AcceptsValidNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Ursula Le Guin", "Ursula Le Guin"},
		{"surrounding whitespace is trimmed", "  le guin \t", "le guin"},
		{"256 ascii characters", strings.Repeat("a", 256), strings.Repeat("a", 256)},
		{"256 multi-byte graphemes", strings.Repeat("ё", 256), strings.Repeat("ё", 256)},
		{"combining marks count once", strings.Repeat("é", 256), strings.Repeat("é", 256)},
		{"non latin", "王健", "王健"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseSubscriberName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseSubscriberName_RejectsInvalidNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"257 graphemes", strings.Repeat("a", 257)},
		{"control character", "le\x00guin"},
		{"newline inside", "le\nguin"},
	}
	for _, r := range `/()"<>\{}` {
		tests = append(tests, struct {
			name  string
			input string
		}{"forbidden " + string(r), "ursula" + string(r)})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseSubscriberName(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidName)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "name", verr.Field)
		})
	}
}

func TestParseSubscriberName_RandomAllowedNames(t *testing.T) {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_.'éü"
	letters := []rune(alphabet)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		n := rng.Intn(domain.MaxNameLength) + 1
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteRune(letters[rng.Intn(len(letters))])
		}
		input := b.String()

		got, err := domain.ParseSubscriberName(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, input, got.String())
	}
}
