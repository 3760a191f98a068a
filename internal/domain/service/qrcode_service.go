package service

import (
	"contacts/internal/domain/entity"
)

// QRCodeService renders scannable codes for domain objects.
type QRCodeService interface {
	// ContactCard renders the contact as a vCard QR code in PNG format.
	ContactCard(contact *entity.Contact) ([]byte, error)
}
