package knowledge

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vitavoice/platform/internal/i18n"
	"github.com/vitavoice/platform/internal/shared/errors"
)

// Handler provides read-only HTTP access to the knowledge base.
type Handler struct {
	kb *Base
}

func NewHandler(kb *Base) *Handler {
	return &Handler{kb: kb}
}

// Routes registers the knowledge routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/search", h.Search)
	r.Get("/stats", h.Stats)
	r.Post("/resolve", h.Resolve)

	r.Get("/symptoms", h.ListSymptoms)
	r.Get("/symptoms/{id}", h.GetSymptom)
	r.Get("/symptoms/{id}/diseases", h.DiseasesForSymptom)

	r.Get("/diseases", h.ListDiseases)
	r.Get("/diseases/{id}", h.GetDisease)
	r.Get("/diseases/{id}/symptoms", h.SymptomsForDisease)

	return r
}

// Search handles GET /search?q=&lang=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, errors.BadRequest("q is required"))
		return
	}

	lang := i18n.Code("")
	if raw := r.URL.Query().Get("lang"); raw != "" {
		code, ok := i18n.ParseCode(raw)
		if !ok {
			writeError(w, errors.BadRequest("unsupported language: "+raw))
			return
		}
		lang = code
	}

	results := h.kb.Search(q, lang)
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  results,
		"total": len(results),
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.kb.Stats())
}

type resolveRequest struct {
	Names []string `json:"names"`
	Text  string   `json:"text,omitempty"`
}

type resolvedName struct {
	Name     string      `json:"name"`
	Symptoms []SymptomID `json:"symptoms"`
}

// Resolve maps reported names (and optionally free text) to canonical symptoms.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}
	if len(req.Names) == 0 && req.Text == "" {
		writeError(w, errors.BadRequest("names or text is required"))
		return
	}

	resolved := make([]resolvedName, 0, len(req.Names))
	for _, name := range req.Names {
		resolved = append(resolved, resolvedName{Name: name, Symptoms: h.kb.Resolve(name)})
	}

	resp := map[string]any{"names": resolved}
	if req.Text != "" {
		resp["text"] = h.kb.Scan(req.Text)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": h.kb.Symptoms()})
}

func (h *Handler) GetSymptom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, ok := h.kb.Symptom(SymptomID(id))
	if !ok {
		writeError(w, errors.NotFound("symptom", id))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) DiseasesForSymptom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.kb.Symptom(SymptomID(id)); !ok {
		writeError(w, errors.NotFound("symptom", id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": h.kb.DiseasesForSymptom(SymptomID(id))})
}

func (h *Handler) ListDiseases(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": h.kb.Diseases()})
}

func (h *Handler) GetDisease(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, ok := h.kb.Disease(DiseaseID(id))
	if !ok {
		writeError(w, errors.NotFound("disease", id))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) SymptomsForDisease(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.kb.Disease(DiseaseID(id)); !ok {
		writeError(w, errors.NotFound("disease", id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":      h.kb.SymptomsForDisease(DiseaseID(id)),
		"emergency": h.kb.IsEmergencyCondition(DiseaseID(id)),
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
