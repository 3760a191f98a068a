package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactModel mirrors the 'contacts' table. OwnerID references users.id.
type ContactModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_contacts_owner_created,priority:1"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255)"`
	Phone     string    `gorm:"type:varchar(64)"`
	Favorite  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"index:idx_contacts_owner_created,priority:2"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ContactModel) TableName() string {
	return "contacts"
}
