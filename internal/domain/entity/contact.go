// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a tenant-owned address book entry.
type Contact struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID // Set once at creation to the creating user's ID.
	Name      string
	Email     string
	Phone     string
	Favorite  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactPatch carries a partial update. Nil fields are left untouched.
type ContactPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Favorite *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p *ContactPatch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.Email == nil && p.Phone == nil && p.Favorite == nil)
}

// Apply copies every set field of the patch onto c.
func (p *ContactPatch) Apply(c *Contact) {
	if p == nil {
		return
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Favorite != nil {
		c.Favorite = *p.Favorite
	}
}

// ContactFilter narrows an owner's contact listing.
type ContactFilter struct {
	Favorite *bool
	Page     int // 1-based; zero disables pagination.
	Limit    int
}

// Offset returns the number of rows to skip for the requested page.
func (f ContactFilter) Offset() int {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0
	}

	return (f.Page - 1) * f.Limit
}
