package service

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"github.com/lsestacionamento/parking-api/pkg/apperror"
	qrcode "github.com/skip2/go-qrcode"
)

// PixService generates PIX payment payloads and their QR images.
//
// The payload is an opaque reference, not an EMV "copia e cola" BR Code;
// wiring a real PSP stays out of scope and the payload format is only
// guaranteed to be stable and unique per charge.
type PixService struct {
	key string
}

// NewPixService creates a new PIX service.
func NewPixService(key string) *PixService {
	return &PixService{key: key}
}

// PixCharge is the generated charge: the payload, a PNG QR of it inlined as a
// data URI, and a fallback image URL for clients that cannot render the PNG.
type PixCharge struct {
	Payload  string `json:"payload"`
	ID       string `json:"pid"`
	QRBase64 string `json:"qr_base64"`
	QRLink   string `json:"qr_link"`
}

// GenerateCharge builds a PIX charge for the given amount in cents.
func (s *PixService) GenerateCharge(amountCents int64, keyOverride string) (*PixCharge, error) {
	key := s.key
	if keyOverride != "" {
		key = keyOverride
	}
	if key == "" {
		return nil, apperror.NewBadRequestError("No PIX key configured")
	}
	if amountCents <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be greater than zero")
	}

	now := time.Now()
	payload := BuildPixPayload(key, amountCents, now)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode PIX QR code: %w", err)
	}

	return &PixCharge{
		Payload:  payload,
		ID:       pixChargeID(now),
		QRBase64: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		QRLink:   "https://api.qrserver.com/v1/create-qr-code/?size=256x256&data=" + url.QueryEscape(payload),
	}, nil
}

// BuildPixPayload assembles the opaque charge reference embedded in receipts
// and QR codes. The timestamp keeps each charge unique.
func BuildPixPayload(key string, amountCents int64, now time.Time) string {
	return fmt.Sprintf("%s|valor=%.2f|pid=%s", key, float64(amountCents)/100, pixChargeID(now))
}

func pixChargeID(now time.Time) string {
	return fmt.Sprintf("PIX-%d", now.UnixMilli())
}
