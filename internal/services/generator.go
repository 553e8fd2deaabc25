package services

import (
	"context"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
)

// ImageGenerator turns a validated payment request into a QR code image.
type ImageGenerator interface {
	Generate(ctx context.Context, req *models.QRRequest) (*models.Image, error)
}
