package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the image edge in pixels.
const DefaultSize = 256

// Generate creates a QR code PNG image for the given URL.
func Generate(url string, size int) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("qrcode: empty url")
	}
	if size <= 0 {
		size = DefaultSize
	}
	return qr.Encode(url, qr.Medium, size)
}
