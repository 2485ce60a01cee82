package wallet

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/AlexZinkM/legacy-wallet/internal/model"
)

// QRSize is the side of generated QR images in pixels
const QRSize = 256

// PublicKeysURI formats the public half of an account for sharing. The
// result carries no secret material.
func PublicKeysURI(keys model.AccountKeys) string {
	return fmt.Sprintf("wallet:?spend=%s&view=%s", keys.SpendPublicKey, keys.ViewPublicKey)
}

// PublicKeysQR renders PublicKeysURI as a PNG QR code
func PublicKeysQR(keys model.AccountKeys) ([]byte, error) {
	qr, err := qrcode.New(PublicKeysURI(keys), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(QRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	return png, nil
}
