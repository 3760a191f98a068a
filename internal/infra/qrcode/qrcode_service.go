// Package qrcode renders contacts as scannable vCard QR codes.
package qrcode

import (
	"strings"

	"contacts/config"
	"contacts/internal/domain/entity"
	"contacts/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a QR code service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level := defaultSize, "M"
	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = cfg.QRCode.ErrorCorrectionLevel
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: parseRecoveryLevel(level),
	}
}

func parseRecoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// ContactCard encodes the contact as a vCard 3.0 and renders it as PNG.
func (s *qrcodeService) ContactCard(contact *entity.Contact) ([]byte, error) {
	if contact == nil {
		return nil, errors.New("contact is nil")
	}

	qrCode, err := qrcode.New(VCard(contact), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// VCard formats the contact as a vCard 3.0 document. Empty fields are omitted.
func VCard(contact *entity.Contact) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\r\nVERSION:3.0\r\n")
	b.WriteString("FN:" + escapeVCard(contact.Name) + "\r\n")
	b.WriteString("N:" + escapeVCard(contact.Name) + ";;;;\r\n")
	if contact.Email != "" {
		b.WriteString("EMAIL;TYPE=INTERNET:" + escapeVCard(contact.Email) + "\r\n")
	}
	if contact.Phone != "" {
		b.WriteString("TEL;TYPE=CELL:" + escapeVCard(contact.Phone) + "\r\n")
	}
	b.WriteString("END:VCARD\r\n")

	return b.String()
}

var vcardEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\r\n", `\n`,
	"\n", `\n`,
)

func escapeVCard(s string) string {
	return vcardEscaper.Replace(s)
}
