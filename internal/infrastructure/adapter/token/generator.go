package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes is the entropy of each invite token. 18 bytes gives 144 bits,
// comfortably beyond guessing range, and encodes without padding.
const tokenBytes = 18

// Generator produces unguessable URL-safe invite tokens
type Generator struct{}

// NewGenerator creates a new token generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a new random token safe to embed in a deep link
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
