package models

import "encoding/base64"

// Image is a generated QR code payload.
type Image struct {
	Data        []byte
	ContentType string
}

// Base64 returns the payload as standard base64 without a data URL prefix.
func (i *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the payload as a data URL usable in an img src attribute.
func (i *Image) DataURL() string {
	ct := i.ContentType
	if ct == "" {
		ct = "image/png"
	}
	return "data:" + ct + ";base64," + i.Base64()
}
