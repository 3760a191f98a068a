// Package model holds the GORM persistence models. They mirror table layouts
// and are mapped to domain entities by the repositories.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password          string    `gorm:"type:varchar(255);not null"`
	Subscription      string    `gorm:"type:varchar(16);not null;default:starter;check:chk_users_subscription,subscription IN ('starter','pro','business')"`
	AvatarURL         string    `gorm:"type:text"`
	VerificationToken string    `gorm:"type:varchar(64);index"`
	Verify            bool      `gorm:"not null;default:false"`
	Token             string    `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Contacts []ContactModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
