// Package security generates the random material used for signing secrets
// and temporary passwords.
package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// AlphanumericAlphabet is used for machine-facing secrets.
	AlphanumericAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// ReadableAlphabet drops glyphs that are easy to misread (0/O, 1/l/I).
	ReadableAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns an unbiased string of length characters drawn from
// alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[position.Int64()]
	}
	return string(out), nil
}

// Secret returns an alphanumeric token suitable for HMAC signing.
func Secret(length int) (string, error) {
	return RandomString(length, AlphanumericAlphabet)
}

// TemporaryPassword returns a password meant to be read off a terminal and
// typed by a person.
func TemporaryPassword(length int) (string, error) {
	return RandomString(length, ReadableAlphabet)
}
