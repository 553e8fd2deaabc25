package services_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

func TestWorkbookInsertImage(t *testing.T) {
	wb := services.NewWorkbook()
	defer wb.Close()

	b64 := base64.StdEncoding.EncodeToString(testPNG(t))
	if err := wb.InsertImage(context.Background(), "E2", b64, true); err != nil {
		t.Fatalf("InsertImage: %v", err)
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	reopened, err := services.OpenWorkbook(&buf)
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	defer reopened.Close()

	if reopened.ActiveSheet() != wb.ActiveSheet() {
		t.Fatalf("active sheet = %q, want %q", reopened.ActiveSheet(), wb.ActiveSheet())
	}
	n, err := reopened.Pictures("E2")
	if err != nil {
		t.Fatalf("Pictures: %v", err)
	}
	if n != 1 {
		t.Fatalf("pictures at E2 = %d, want 1", n)
	}
}

func TestWorkbookInsertImageErrors(t *testing.T) {
	wb := services.NewWorkbook()
	defer wb.Close()
	ctx := context.Background()

	cases := map[string]struct {
		cell, image, want string
	}{
		"cell":     {"A0", base64.StdEncoding.EncodeToString(testPNG(t)), "invalid cell"},
		"encoding": {"A1", "@@@", "invalid image encoding"},
		"type":     {"A1", base64.StdEncoding.EncodeToString([]byte("plain text")), "unsupported image type"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := wb.InsertImage(ctx, c.cell, c.image, false)
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err = %v, want containing %q", err, c.want)
			}
		})
	}
}

func TestOpenWorkbookRejectsGarbage(t *testing.T) {
	if _, err := services.OpenWorkbook(strings.NewReader("not a zip")); err == nil {
		t.Fatal("expected error")
	}
}
