package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	json "github.com/json-iterator/go"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

const maxUploadBytes = 16 << 20

// submission is a parsed taskpane post. Workbook is nil when no workbook was
// uploaded.
type submission struct {
	Form         models.PaymentForm
	Workbook     *services.Workbook
	WorkbookName string
}

func (s *submission) host() services.ImageHost {
	if s.Workbook == nil {
		return nil
	}
	return s.Workbook
}

func (s *submission) Close() {
	if s.Workbook != nil {
		s.Workbook.Close()
	}
}

// readSubmission accepts urlencoded, multipart (with an optional "workbook"
// file) and JSON bodies.
func readSubmission(w http.ResponseWriter, r *http.Request) (*submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		var form models.PaymentForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return nil, fmt.Errorf("invalid request body: %w", err)
		}
		return &submission{Form: form}, nil
	}

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, fmt.Errorf("invalid form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}

	sub := &submission{Form: formFromValues(r)}
	if r.MultipartForm == nil {
		return sub, nil
	}
	file, header, err := r.FormFile("workbook")
	if errors.Is(err, http.ErrMissingFile) {
		return sub, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid workbook upload: %w", err)
	}
	defer file.Close()
	if header.Size == 0 {
		return sub, nil
	}

	wb, err := services.OpenWorkbook(file)
	if err != nil {
		return nil, err
	}
	sub.Workbook = wb
	sub.WorkbookName = filepath.Base(header.Filename)
	return sub, nil
}

// formFromValues reads the taskpane field names.
func formFromValues(r *http.Request) models.PaymentForm {
	return models.PaymentForm{
		AccountPrefix:  r.FormValue("bic_prefix"),
		AccountNumber:  r.FormValue("bic"),
		BankCode:       r.FormValue("bank_code"),
		Amount:         r.FormValue("amount"),
		Currency:       r.FormValue("currency"),
		VariableSymbol: r.FormValue("vs"),
		SpecificSymbol: r.FormValue("ss"),
		ConstantSymbol: r.FormValue("ks"),
		Message:        r.FormValue("msg_input"),
		TargetCell:     r.FormValue("qr_dest"),
		FitToCell:      isChecked(r.FormValue("fitToCell")),
	}
}

func isChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func writeWorkbook(w http.ResponseWriter, sub *submission) error {
	name := sub.WorkbookName
	if name == "" || name == "." {
		name = "workbook.xlsx"
	}
	ext := filepath.Ext(name)
	name = strings.TrimSuffix(name, ext) + "-qr.xlsx"

	w.Header().Set("Content-Type", services.WorkbookContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	return sub.Workbook.Write(w)
}

func messagesFor(r *http.Request, fallback string) services.Messages {
	return services.NewMessages(services.MatchLocale(r.Header.Get("Accept-Language"), fallback))
}
