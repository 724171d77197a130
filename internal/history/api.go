package history

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vitavoice/platform/internal/shared/auth"
	"github.com/vitavoice/platform/internal/shared/errors"
	"github.com/vitavoice/platform/internal/shared/types"
)

// Reader looks up history entries.
type Reader interface {
	FindByID(ctx context.Context, id types.ID) (*Entry, error)
	List(ctx context.Context, filter ListFilter) ([]Entry, int, error)
}

// Handler provides HTTP handlers for diagnostic history
type Handler struct {
	repo Reader
}

// NewHandler creates a new history handler
func NewHandler(repo Reader) *Handler {
	return &Handler{repo: repo}
}

// Routes registers the history routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/emergencies", h.ListEmergencies)
	r.Get("/{entryID}", h.Get)

	return r
}

// List lists a patient's history. Authenticated patients default to their
// own records.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := pageFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var patientID types.ID
	if raw := r.URL.Query().Get("patient_id"); raw != "" {
		patientID, err = types.ParseID(raw)
		if err != nil {
			writeError(w, errors.BadRequest("invalid patient_id"))
			return
		}
	}

	user := auth.GetUser(r.Context())
	if patientID.IsZero() && user != nil {
		patientID = user.ID
	}
	if patientID.IsZero() {
		writeError(w, errors.BadRequest("patient_id is required"))
		return
	}
	if user != nil && !user.CanReadPatient(patientID) {
		writeError(w, errors.Forbidden("cannot read another patient's history"))
		return
	}

	filter.PatientID = &patientID
	if t := r.URL.Query().Get("type"); t != "" {
		entryType := EntryType(t)
		if !entryType.valid() {
			writeError(w, errors.Validation("invalid entry type", map[string]string{"type": t}))
			return
		}
		filter.Type = &entryType
	}

	entries, total, err := h.repo.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  entries,
		"total": total,
	})
}

// ListEmergencies lists recent emergencies across patients for clinicians.
func (h *Handler) ListEmergencies(w http.ResponseWriter, r *http.Request) {
	if user := auth.GetUser(r.Context()); user != nil && !user.HasRole(auth.UserTypeDoctor) && !user.IsAdmin() {
		writeError(w, errors.Forbidden("clinician access required"))
		return
	}

	filter, err := pageFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	filter.EmergencyOnly = true

	entries, total, err := h.repo.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  entries,
		"total": total,
	})
}

// Get returns one entry
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseID(chi.URLParam(r, "entryID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid entry ID"))
		return
	}

	entry, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if user := auth.GetUser(r.Context()); user != nil && !user.CanReadPatient(entry.PatientID) {
		writeError(w, errors.NotFound("history entry", id.String()))
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func pageFilter(r *http.Request) (ListFilter, error) {
	var filter ListFilter
	q := r.URL.Query()

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filter, errors.BadRequest("limit must be a positive integer")
		}
		filter.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return filter, errors.BadRequest("offset must be a non-negative integer")
		}
		filter.Offset = offset
	}
	return filter, nil
}

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
