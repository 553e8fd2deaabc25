package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

type PreferencesHandler struct {
	store services.PreferencesStore
}

func NewPreferencesHandler(store services.PreferencesStore) *PreferencesHandler {
	return &PreferencesHandler{store: store}
}

// FirstRun handles GET /api/first-run.
func (h *PreferencesHandler) FirstRun(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.store.Get(r.Context(), clientID(w, r))
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch preferences")
		writeError(w, http.StatusInternalServerError, "failed to fetch preferences")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// CompleteFirstRun handles PUT /api/first-run.
func (h *PreferencesHandler) CompleteFirstRun(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.store.CompleteFirstRun(r.Context(), clientID(w, r))
	if err != nil {
		log.Error().Err(err).Msg("failed to update preferences")
		writeError(w, http.StatusInternalServerError, "failed to update preferences")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}
