package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

//go:embed templates/taskpane.html
var templateFS embed.FS

var taskpaneTemplate = template.Must(template.ParseFS(templateFS, "templates/taskpane.html"))

type TaskpaneHandler struct {
	service *services.QRService
	prefs   services.PreferencesStore
	locale  string
}

func NewTaskpaneHandler(service *services.QRService, prefs services.PreferencesStore, locale string) *TaskpaneHandler {
	return &TaskpaneHandler{service: service, prefs: prefs, locale: locale}
}

type taskpaneData struct {
	Msgs     services.Messages
	FirstRun bool
	Form     models.PaymentForm
	Banks    []bank
	Message  string
	IsError  bool
	Invalid  map[string]bool
	Preview  template.URL

	// OtherBank is a submitted bank code missing from Banks.
	OtherBank string
}

// Show handles GET /taskpane.
func (h *TaskpaneHandler) Show(w http.ResponseWriter, r *http.Request) {
	data := h.newData(r, clientID(w, r))
	data.Form.BankCode = "0800"
	data.Form.Currency = "CZK"
	data.Form.FitToCell = true
	h.render(w, http.StatusOK, data)
}

// Submit handles POST /taskpane, the browser form post.
func (h *TaskpaneHandler) Submit(w http.ResponseWriter, r *http.Request) {
	client := clientID(w, r)
	data := h.newData(r, client)

	sub, err := readSubmission(w, r)
	if err != nil {
		data.Message, data.IsError = err.Error(), true
		h.render(w, http.StatusBadRequest, data)
		return
	}
	defer sub.Close()
	data.Form = sub.Form

	res, err := h.service.Submit(r.Context(), client, sub.Form, sub.host(), data.Msgs)
	if err != nil {
		data.Message, data.IsError = err.Error(), true
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields() {
				data.Invalid[f] = true
			}
		}
		h.render(w, submitStatus(err), data)
		return
	}

	if res.Inserted {
		if err := writeWorkbook(w, sub); err != nil {
			log.Error().Err(err).Msg("failed to write workbook response")
		}
		return
	}
	data.Message = res.Message
	data.Preview = template.URL(res.DataURL())
	h.render(w, http.StatusOK, data)
}

// CompleteFirstRun handles POST /taskpane/first-run.
func (h *TaskpaneHandler) CompleteFirstRun(w http.ResponseWriter, r *http.Request) {
	if _, err := h.prefs.CompleteFirstRun(r.Context(), clientID(w, r)); err != nil {
		log.Error().Err(err).Msg("failed to complete first run")
		http.Error(w, "failed to update preferences", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/taskpane", http.StatusSeeOther)
}

func (h *TaskpaneHandler) newData(r *http.Request, client string) *taskpaneData {
	data := &taskpaneData{
		Msgs:    messagesFor(r, h.locale),
		Banks:   banks,
		Invalid: map[string]bool{},
	}
	prefs, err := h.prefs.Get(r.Context(), client)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load preferences")
		return data
	}
	data.FirstRun = !prefs.FirstRunCompleted
	return data
}

func (h *TaskpaneHandler) render(w http.ResponseWriter, status int, data *taskpaneData) {
	if code := data.Form.BankCode; code != "" && !knownBank(code) {
		data.OtherBank = code
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := taskpaneTemplate.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("failed to render taskpane")
	}
}
