package vaccination

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vitavoice/platform/internal/shared/auth"
	"github.com/vitavoice/platform/internal/shared/errors"
	"github.com/vitavoice/platform/internal/shared/events"
	"github.com/vitavoice/platform/internal/shared/types"
	"go.uber.org/zap"
)

// Store persists vaccination records.
type Store interface {
	Create(ctx context.Context, rec *Record) error
	ListByPatient(ctx context.Context, patientID types.ID) ([]Record, error)
	Delete(ctx context.Context, patientID, recordID types.ID) error
}

// Handler provides HTTP handlers for vaccinations
type Handler struct {
	store     Store
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandler creates a vaccination handler. Without a store only the
// schedule is served.
func NewHandler(store Store, publisher events.Publisher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, publisher: publisher, logger: logger, now: time.Now}
}

// Routes registers the vaccination routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/schedule", h.GetSchedule)

	if h.store != nil {
		r.Route("/patients/{patientID}", func(r chi.Router) {
			r.Get("/records", h.ListRecords)
			r.Post("/records", h.AddRecord)
			r.Delete("/records/{recordID}", h.DeleteRecord)
			r.Get("/status", h.GetStatus)
			r.Get("/certificate", h.GetCertificate)
		})
	}

	return r
}

// GetSchedule handles GET /schedule?category=
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	category := Category(r.URL.Query().Get("category"))
	if category != "" && !category.valid() {
		writeError(w, errors.Validation("invalid category", map[string]string{"category": string(category)}))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": Schedule(category)})
}

// ListRecords handles GET /patients/{patientID}/records
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	patientID, err := h.patient(r)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.store.ListByPatient(r.Context(), patientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": records, "total": len(records)})
}

// AddRecord handles POST /patients/{patientID}/records
func (h *Handler) AddRecord(w http.ResponseWriter, r *http.Request) {
	patientID, err := h.patient(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in RecordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	rec, err := NewRecord(patientID, in, h.now())
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.Create(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}

	if h.publisher != nil {
		event := events.NewEvent(events.TypeVaccinationRecorded, "vaccination", map[string]any{
			"record_id":  rec.ID,
			"vaccine_id": rec.VaccineID,
			"dose":       rec.DoseNumber,
			"date_given": rec.DateGiven,
		})
		if user := auth.GetUser(r.Context()); user != nil {
			event = event.WithActor(user.ID, user.UserType)
		}
		if err := h.publisher.Publish(r.Context(), event); err != nil {
			h.logger.Warn("failed to publish event", zap.String("type", event.Type), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusCreated, rec)
}

// DeleteRecord handles DELETE /patients/{patientID}/records/{recordID}
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	patientID, err := h.patient(r)
	if err != nil {
		writeError(w, err)
		return
	}
	recordID, err := types.ParseID(chi.URLParam(r, "recordID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid record ID"))
		return
	}

	if err := h.store.Delete(r.Context(), patientID, recordID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStatus handles GET /patients/{patientID}/status?age_months=&pregnant=
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	patientID, err := h.patient(r)
	if err != nil {
		writeError(w, err)
		return
	}
	profile, err := parseProfile(r)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.store.ListByPatient(r.Context(), patientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Evaluate(records, profile))
}

// GetCertificate handles GET /patients/{patientID}/certificate?age_months=
func (h *Handler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	patientID, err := h.patient(r)
	if err != nil {
		writeError(w, err)
		return
	}
	profile, err := parseProfile(r)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.store.ListByPatient(r.Context(), patientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewCertificate(patientID, records, profile, h.now()))
}

// patient parses the path patient and checks the caller may access it.
func (h *Handler) patient(r *http.Request) (types.ID, error) {
	patientID, err := types.ParseID(chi.URLParam(r, "patientID"))
	if err != nil {
		return "", errors.BadRequest("invalid patient ID")
	}
	if user := auth.GetUser(r.Context()); user != nil && !user.CanReadPatient(patientID) {
		return "", errors.Forbidden("cannot access another patient's vaccinations")
	}
	return patientID, nil
}

func parseProfile(r *http.Request) (Profile, error) {
	var p Profile
	q := r.URL.Query()

	raw := q.Get("age_months")
	if raw == "" {
		return p, errors.BadRequest("age_months is required")
	}
	age, err := strconv.ParseFloat(raw, 64)
	if err != nil || age < 0 {
		return p, errors.Validation("invalid profile", map[string]string{"age_months": "must be a non-negative number"})
	}
	p.AgeMonths = age

	if raw := q.Get("pregnant"); raw != "" {
		pregnant, err := strconv.ParseBool(raw)
		if err != nil {
			return p, errors.Validation("invalid profile", map[string]string{"pregnant": "must be true or false"})
		}
		p.Pregnant = pregnant
	}
	return p, nil
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
