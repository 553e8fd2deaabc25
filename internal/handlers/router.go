package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

// Dependencies are the services the HTTP surface needs.
type Dependencies struct {
	QR          *services.QRService
	History     services.HistoryStore
	Preferences services.PreferencesStore
	Locale      string
}

func NewRouter(deps Dependencies) *mux.Router {
	qrHandler := NewQRHandler(deps.QR, deps.Locale)
	taskpaneHandler := NewTaskpaneHandler(deps.QR, deps.Preferences, deps.Locale)
	historyHandler := NewHistoryHandler(deps.History)
	preferencesHandler := NewPreferencesHandler(deps.Preferences)

	router := mux.NewRouter()
	router.Use(requestLogger)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	router.HandleFunc("/taskpane", taskpaneHandler.Show).Methods("GET")
	router.HandleFunc("/taskpane", taskpaneHandler.Submit).Methods("POST")
	router.HandleFunc("/taskpane/first-run", taskpaneHandler.CompleteFirstRun).Methods("POST")

	router.HandleFunc("/api/qr", qrHandler.Generate).Methods("POST")
	router.HandleFunc("/api/history", historyHandler.List).Methods("GET")
	router.HandleFunc("/api/first-run", preferencesHandler.FirstRun).Methods("GET")
	router.HandleFunc("/api/first-run", preferencesHandler.CompleteFirstRun).Methods("PUT", "PATCH")
	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
