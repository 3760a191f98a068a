package auth

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"contacts/internal/domain/service"
)

// verificationCodeLength matches the nanoid default, about 126 bits of entropy.
const verificationCodeLength = 21

type nanoidGenerator struct{}

// NewCodeGenerator returns a URL-safe nanoid generator for verification codes.
func NewCodeGenerator() service.CodeGenerator {
	return &nanoidGenerator{}
}

// Generate returns a fresh 21-character code over the alphabet [A-Za-z0-9_-].
func (g *nanoidGenerator) Generate() (string, error) {
	return gonanoid.New(verificationCodeLength)
}
