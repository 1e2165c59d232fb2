package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// StateSize is the entropy of an OAuth state value in bytes.
const StateSize = 32

// GenerateState returns a random base64url value (no padding) of size bytes,
// used for the OAuth state round trip.
func GenerateState(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("state size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random state: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// EqualState compares two state values in constant time. Empty values never
// match.
func EqualState(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
