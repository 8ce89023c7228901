package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Generator renders share QR codes pointing at an event's public URL.
type Generator struct {
	baseURL string
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: baseURL}
}

// EventQR returns a PNG QR code encoding the event's share URL.
func (g *Generator) EventQR(eventID string) ([]byte, error) {
	url := fmt.Sprintf("%s/events/%s", g.baseURL, eventID)
	return qrcode.Encode(url, qrcode.Medium, 256)
}
