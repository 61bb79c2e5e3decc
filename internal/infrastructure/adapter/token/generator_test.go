package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var reURLSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok, err := g.Generate()
		assert.NoError(t, err)
		assert.Len(t, tok, 24) // 18 bytes, base64 without padding
		assert.True(t, reURLSafe.MatchString(tok), "token %q must be URL-safe", tok)

		assert.False(t, seen[tok], "token %q generated twice", tok)
		seen[tok] = true
	}
}
