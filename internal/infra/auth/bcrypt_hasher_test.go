package auth

import (
	"testing"

	"contacts/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	password := "secret1"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, defaultBcryptCost, cost)

	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	first, err := hasher.Hash("samepass")
	require.NoError(t, err)
	second, err := hasher.Hash("samepass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher(nil)
	password := "secret1"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("wrong-pass", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "configured", cost: bcrypt.MinCost, want: bcrypt.MinCost},
		{name: "zero falls back", cost: 0, want: defaultBcryptCost},
		{name: "too high falls back", cost: bcrypt.MaxCost + 1, want: defaultBcryptCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: tt.cost}})

			assert.Equal(t, tt.want, hasher.(*bcryptHasher).cost)
		})
	}
}
