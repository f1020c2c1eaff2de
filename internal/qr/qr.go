package qr

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateShopQR writes a QR code PNG pointing at the public shop page
// and returns its path.
func GenerateShopQR(dir string, publicBaseURL string, shopID int64) (string, error) {
	shopURL := fmt.Sprintf("%s/boutique/%d", publicBaseURL, shopID)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create QR directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("boutique_%d.png", shopID))
	if err := qrcode.WriteFile(shopURL, qrcode.Medium, 256, path); err != nil {
		return "", fmt.Errorf("failed to write QR code: %w", err)
	}

	return path, nil
}

// WhatsAppShareLink builds a wa.me link promoting the shop.
func WhatsAppShareLink(publicBaseURL string, shopID int64) string {
	shopURL := fmt.Sprintf("%s/boutique/%d", publicBaseURL, shopID)
	message := fmt.Sprintf("Découvrez ma boutique sur Djaapp ! %s", shopURL)
	return "https://wa.me/?text=" + url.QueryEscape(message)
}
