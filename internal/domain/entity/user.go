// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity root of the system. Every contact is owned by exactly one user.
type User struct {
	ID                uuid.UUID    // Generated at creation, never changes.
	Email             string       // Unique across all users, used as the login identifier.
	PasswordHash      string       // bcrypt output. Never returned to clients.
	Subscription      Subscription // Plan tag, defaults to SubscriptionStarter.
	AvatarURL         string       // Gravatar URL at registration, replaced by avatar upload.
	VerificationToken string       // One-time code; non-empty exactly while Verify is false.
	Verify            bool         // Flips false -> true once the email is confirmed, never back.
	Token             string       // The single active session token; empty when logged out.
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsVerified reports whether the user confirmed their email address.
func (u *User) IsVerified() bool {
	return u.Verify
}

// HasActiveSession reports whether the user holds a session token.
func (u *User) HasActiveSession() bool {
	return u.Token != ""
}

// MarkVerified moves the user into the verified state and consumes the verification code.
func (u *User) MarkVerified() {
	u.Verify = true
	u.VerificationToken = ""
}

// OwnsSession reports whether token is the session currently bound to the user.
func (u *User) OwnsSession(token string) bool {
	return token != "" && u.Token == token
}
