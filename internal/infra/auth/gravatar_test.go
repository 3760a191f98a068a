package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarResolver_DefaultURL(t *testing.T) {
	resolver := NewGravatarResolver()

	// md5("myemailaddress@example.com") from the Gravatar docs.
	want := "https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=identicon"

	assert.Equal(t, want, resolver.DefaultURL("myemailaddress@example.com"))
	assert.Equal(t, want, resolver.DefaultURL("  MyEmailAddress@example.com "))
}
