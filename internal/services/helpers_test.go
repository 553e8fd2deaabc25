package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/skip2/go-qrcode"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	png, err := qrcode.Encode("test", qrcode.Low, 64)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return png
}

type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	img   *models.Image
	err   error

	// When set, requests for blockAccount signal started and wait for release.
	blockAccount string
	started      chan struct{}
	release      chan struct{}
}

func (g *fakeGenerator) Generate(ctx context.Context, req *models.QRRequest) (*models.Image, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	if g.blockAccount != "" && req.AccountNumber == g.blockAccount {
		close(g.started)
		<-g.release
	}
	if g.err != nil {
		return nil, g.err
	}
	return g.img, nil
}

func (g *fakeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type fakeHost struct {
	calls int
	cell  string
	image string
	fit   bool
	err   error
}

func (h *fakeHost) InsertImage(ctx context.Context, cell, base64Image string, fit bool) error {
	h.calls++
	h.cell, h.image, h.fit = cell, base64Image, fit
	return h.err
}
