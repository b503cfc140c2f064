package qr

import "github.com/skip2/go-qrcode"

// PNG renders an admission QR for a booking reference, shown on the
// confirmation page and scanned at the door.
func PNG(reference string) ([]byte, error) {
	return qrcode.Encode(reference, qrcode.Medium, 256)
}
