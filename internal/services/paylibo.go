package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
)

const maxImageBytes = 4 << 20

// PayliboGenerator fetches QR images from the Paylibo Czech image generator.
type PayliboGenerator struct {
	baseURL string
	client  *http.Client
}

func NewPayliboGenerator(baseURL string, timeout time.Duration) *PayliboGenerator {
	return &PayliboGenerator{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// URL returns the full generator URL for a request.
func (g *PayliboGenerator) URL(req *models.QRRequest) string {
	sep := "?"
	if strings.Contains(g.baseURL, "?") {
		sep = "&"
	}
	return g.baseURL + sep + req.Query().Encode()
}

func (g *PayliboGenerator) Generate(ctx context.Context, req *models.QRRequest) (*models.Image, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.URL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator request: %w", err)
	}
	httpReq.Header.Set("Accept", "image/png, image/*")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("account", req.Account()).Msg("generator request failed")
		return nil, fmt.Errorf("generator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("generator returned non-OK status")
		return nil, fmt.Errorf("network response was not ok: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read generator response: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("generator returned an empty image")
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("generator image exceeds %d bytes", maxImageBytes)
	}

	contentType := imageContentType(resp.Header.Get("Content-Type"), data)
	if contentType == "" {
		return nil, errors.New("generator did not return an image")
	}
	return &models.Image{Data: data, ContentType: contentType}, nil
}

// imageContentType prefers a declared image/* type and falls back to
// sniffing the payload. It returns "" when the payload is not an image.
func imageContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(strings.SplitN(declared, ";", 2)[0])
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return ""
}
