package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

type HistoryHandler struct {
	store services.HistoryStore
}

func NewHistoryHandler(store services.HistoryStore) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// List handles GET /api/history.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = n
	}

	generations, err := h.store.List(r.Context(), clientID(w, r), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch history")
		writeError(w, http.StatusInternalServerError, "failed to fetch history")
		return
	}
	writeJSON(w, http.StatusOK, generations)
}
