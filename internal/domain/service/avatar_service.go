package service

import (
	"context"
	"io"
)

// AvatarResolver derives the default avatar reference for an email address.
type AvatarResolver interface {
	DefaultURL(email string) string
}

// AvatarStorage stores processed avatar images and serves them back.
type AvatarStorage interface {
	// Save resizes the image read from r, stores it under a name derived from
	// key and returns the public URL of the stored object.
	Save(ctx context.Context, key string, r io.Reader) (string, error)

	// Open returns a reader for a stored avatar by its object name.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
