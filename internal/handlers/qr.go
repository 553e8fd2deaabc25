package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

type QRHandler struct {
	service *services.QRService
	locale  string
}

func NewQRHandler(service *services.QRService, locale string) *QRHandler {
	return &QRHandler{service: service, locale: locale}
}

type qrResponse struct {
	Message     string `json:"message"`
	Image       string `json:"image"`
	ContentType string `json:"contentType"`
	DataURL     string `json:"dataUrl"`
	Inserted    bool   `json:"inserted"`
}

// Generate handles POST /api/qr. With an uploaded workbook the response is
// the workbook with the QR image placed; otherwise a JSON preview.
func (h *QRHandler) Generate(w http.ResponseWriter, r *http.Request) {
	client := clientID(w, r)
	msgs := messagesFor(r, h.locale)

	sub, err := readSubmission(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer sub.Close()

	res, err := h.service.Submit(r.Context(), client, sub.Form, sub.host(), msgs)
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	if res.Inserted {
		if err := writeWorkbook(w, sub); err != nil {
			log.Error().Err(err).Msg("failed to write workbook response")
		}
		return
	}
	writeJSON(w, http.StatusOK, qrResponse{
		Message:     res.Message,
		Image:       res.Base64,
		ContentType: res.Image.ContentType,
		DataURL:     res.DataURL(),
	})
}
