package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/xuri/excelize/v2"
)

const WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImageHost places a base64 encoded image into a document at a cell.
type ImageHost interface {
	InsertImage(ctx context.Context, cell, base64Image string, fit bool) error
}

// Workbook is an ImageHost backed by an xlsx workbook. Images go to the
// sheet that was active when the workbook was opened.
type Workbook struct {
	file  *excelize.File
	sheet string
}

func OpenWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		f.Close()
		return nil, fmt.Errorf("workbook has no active sheet")
	}
	return &Workbook{file: f, sheet: sheet}, nil
}

// NewWorkbook creates an empty single-sheet workbook.
func NewWorkbook() *Workbook {
	f := excelize.NewFile()
	return &Workbook{file: f, sheet: f.GetSheetName(f.GetActiveSheetIndex())}
}

func (w *Workbook) ActiveSheet() string {
	return w.sheet
}

func (w *Workbook) InsertImage(ctx context.Context, cell, base64Image string, fit bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := excelize.CellNameToCoordinates(cell); err != nil {
		return fmt.Errorf("invalid cell %q: %w", cell, err)
	}
	data, err := base64.StdEncoding.DecodeString(base64Image)
	if err != nil {
		return fmt.Errorf("invalid image encoding: %w", err)
	}
	ext, err := pictureExtension(data)
	if err != nil {
		return err
	}

	err = w.file.AddPictureFromBytes(w.sheet, cell, &excelize.Picture{
		Extension: ext,
		File:      data,
		Format: &excelize.GraphicOptions{
			AltText:         "QR platba",
			AutoFit:         fit,
			LockAspectRatio: true,
			PrintObject:     boolPtr(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to add picture to %s!%s: %w", w.sheet, cell, err)
	}
	return nil
}

// Pictures returns the number of pictures anchored at cell on the active sheet.
func (w *Workbook) Pictures(cell string) (int, error) {
	pics, err := w.file.GetPictures(w.sheet, cell)
	if err != nil {
		return 0, err
	}
	return len(pics), nil
}

func (w *Workbook) Write(out io.Writer) error {
	if err := w.file.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

func pictureExtension(data []byte) (string, error) {
	switch ct := http.DetectContentType(data); ct {
	case "image/png":
		return ".png", nil
	case "image/jpeg":
		return ".jpg", nil
	case "image/gif":
		return ".gif", nil
	default:
		return "", fmt.Errorf("unsupported image type %s", ct)
	}
}

func boolPtr(b bool) *bool { return &b }
