package i18n

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vitavoice/platform/internal/shared/errors"
)

// Handler exposes language metadata and translations over HTTP.
type Handler struct {
	translator *Translator
}

func NewHandler(translator *Translator) *Handler {
	return &Handler{translator: translator}
}

// Routes registers the language routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/detect", h.Detect)
	r.Get("/{code}/translations", h.Translations)

	return r
}

// List returns the supported languages and the one preferred by the client.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"languages": Languages(),
		"preferred": Negotiate(r.Header.Get("Accept-Language")),
	})
}

type detectRequest struct {
	Text string `json:"text"`
}

// Detect guesses the language of a piece of text.
func (h *Handler) Detect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}
	if req.Text == "" {
		writeError(w, errors.BadRequest("text is required"))
		return
	}

	code := Detect(req.Text)
	info, _ := Lookup(code)
	writeJSON(w, http.StatusOK, info)
}

// Translations returns the full message table for a language.
func (h *Handler) Translations(w http.ResponseWriter, r *http.Request) {
	code, ok := ParseCode(chi.URLParam(r, "code"))
	if !ok {
		writeError(w, errors.NotFound("language", chi.URLParam(r, "code")))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"language":     code,
		"translations": h.translator.All(code),
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := errors.As(err); ok {
		w.WriteHeader(appErr.HTTPStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
