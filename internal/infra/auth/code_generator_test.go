package auth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{21}$`)

func TestNanoidGenerator_Generate(t *testing.T) {
	gen := NewCodeGenerator()
	seen := make(map[string]struct{}, 1000)

	for range 1000 {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)

		_, dup := seen[code]
		assert.False(t, dup, "duplicate code %s", code)
		seen[code] = struct{}{}
	}
}
