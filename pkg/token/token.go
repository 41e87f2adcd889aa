package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// SecretLength is the length of a generated ticket signing secret
const SecretLength = 48

// ErrInvalidLength is returned when a token of length zero or less is requested
var ErrInvalidLength = errors.New("token length must be greater than zero")

// Generate returns a crypto-secure random string of length n
// The string only contains URL safe characters: A-Z a-z 0-9 - _
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidLength
	}

	// every 3 bytes encode to 4 characters
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}

// NewSecret returns a random secret for signing seat tickets
func NewSecret() ([]byte, error) {
	s, err := Generate(SecretLength)
	if err != nil {
		return nil, err
	}

	return []byte(s), nil
}
