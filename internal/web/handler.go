// Package web serves the practice page and its JSON API.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lojasmm/convostarter/internal/catalog"
	"github.com/lojasmm/convostarter/internal/logger"
	"github.com/lojasmm/convostarter/internal/practice"
	"github.com/lojasmm/convostarter/internal/session"
)

//go:embed page.html
var pageFS embed.FS

var pageTmpl = template.Must(template.ParseFS(pageFS, "page.html"))

const cookieName = "convo_session"

type pageData struct {
	Languages  []catalog.LanguageOption
	Scenarios  []catalog.ScenarioOption
	State      practice.Snapshot
	PromptLang string
	Pending    bool
}

type Handler struct {
	sessions *session.Manager
	log      *logger.Logger
}

func NewHandler(sessions *session.Manager, log *logger.Logger) *Handler {
	return &Handler{sessions: sessions, log: log}
}

// Routes mounts the page, form and API endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.HandlePage)
	r.Post("/selection", h.HandleSelectForm)
	r.Post("/response", h.HandleSubmitForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.HandleCatalog)
		r.Get("/state", h.HandleState)
		r.Put("/selection", h.HandleSelect)
		r.Post("/response", h.HandleSubmit)
	})
}

// session returns the caller's practice session, issuing a cookie for new ones.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *practice.Session {
	var id string
	if c, err := r.Cookie(cookieName); err == nil {
		id = c.Value
	}
	newID, s := h.sessions.Get(id)
	if newID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    newID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		h.log.Info("practice session created", "session_id", newID)
	}
	return s
}

func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	snap := h.session(w, r).Snapshot()

	data := pageData{
		Languages: catalog.Languages(),
		Scenarios: catalog.Scenarios(),
		State:     snap,
		Pending:   snap.Status == practice.StatusGenerating || snap.Submitting,
	}
	if l, ok := catalog.Language(snap.Language); ok {
		data.PromptLang = l.Tag.String()
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		h.log.Error("rendering practice page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *Handler) HandleSelectForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h.session(w, r).Select(r.FormValue("language"), r.FormValue("scenario"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) HandleSubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	// Validation errors are already part of the session state the page shows.
	h.session(w, r).Submit(r.FormValue("response"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type languageJSON struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Native string `json:"native"`
}

type scenarioJSON struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type catalogJSON struct {
	Languages []languageJSON `json:"languages"`
	Scenarios []scenarioJSON `json:"scenarios"`
}

func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	var out catalogJSON
	for _, l := range catalog.Languages() {
		out.Languages = append(out.Languages, languageJSON{ID: l.ID, Label: l.Label, Native: l.Native()})
	}
	for _, s := range catalog.Scenarios() {
		out.Scenarios = append(out.Scenarios, scenarioJSON{ID: s.ID, Label: s.Label})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session(w, r).Snapshot())
}

type selectionRequest struct {
	Language string `json:"language"`
	Scenario string `json:"scenario"`
}

func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	writeJSON(w, http.StatusOK, h.session(w, r).Select(req.Language, req.Scenario))
}

type responseRequest struct {
	Response string `json:"response"`
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req responseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	snap, err := h.session(w, r).Submit(req.Response)
	switch {
	case errors.Is(err, practice.ErrSubmitPending):
		writeJSON(w, http.StatusConflict, snap)
	case errors.Is(err, practice.ErrSessionClosed):
		snap.Error = practice.UserMessage(err)
		writeJSON(w, http.StatusGone, snap)
	default:
		writeJSON(w, http.StatusOK, snap)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
