package handlers

import (
	"errors"
	"net/http"

	json "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// submitStatus maps a Submit error onto an HTTP status.
func submitStatus(err error) int {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, services.ErrFetch), errors.Is(err, services.ErrInsert):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeSubmitError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields()
	}
	writeJSON(w, submitStatus(err), resp)
}
