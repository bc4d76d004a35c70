// Package invitecode provides generation of opaque invite codes.
package invitecode

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// DefaultLength is the default invite code length in characters.
const DefaultLength = 12

// MinLength is the minimum allowed invite code length.
const MinLength = 8

// MaxLength is the maximum allowed invite code length.
const MaxLength = 32

// codeEncoding is unpadded base32; every output character is safe in a URL
// path segment.
var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Generate returns a random lowercase code of exactly length characters.
// Randomness comes from crypto/rand; an error here is fatal for the caller
// and must never be worked around with a weaker source.
func Generate(length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", fmt.Errorf("invite code length must be between %d and %d, got %d", MinLength, MaxLength, length)
	}

	// base32 yields 8 characters per 5 bytes, so length bytes always encode
	// to at least length characters.
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	code := codeEncoding.EncodeToString(buf)
	return strings.ToLower(code[:length]), nil
}
