package auth

import (
	"crypto/md5" //nolint:gosec // Gravatar addresses images by the MD5 of the email.
	"encoding/hex"
	"strings"

	"contacts/internal/domain/service"
)

const gravatarBaseURL = "https://www.gravatar.com/avatar/"

type gravatarResolver struct{}

// NewGravatarResolver returns the resolver used for avatars at registration.
func NewGravatarResolver() service.AvatarResolver {
	return &gravatarResolver{}
}

// DefaultURL builds a Gravatar link, falling back to the identicon image.
func (r *gravatarResolver) DefaultURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email)))) //nolint:gosec

	return gravatarBaseURL + hex.EncodeToString(sum[:]) + "?d=identicon"
}
