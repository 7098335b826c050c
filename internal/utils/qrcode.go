package utils

import (
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRCode writes a 256x256 PNG encoding content to path.
func GenerateQRCode(content string, path string) error {
	return qrcode.WriteFile(content, qrcode.Medium, 256, path)
}
