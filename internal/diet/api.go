package diet

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vitavoice/platform/internal/shared/auth"
	"github.com/vitavoice/platform/internal/shared/errors"
	"github.com/vitavoice/platform/internal/shared/events"
	"github.com/vitavoice/platform/internal/shared/types"
	"go.uber.org/zap"
)

// Store persists generated plans.
type Store interface {
	Create(ctx context.Context, p *Plan) error
	FindByID(ctx context.Context, patientID, planID types.ID) (*Plan, error)
	ListByPatient(ctx context.Context, patientID types.ID) ([]Plan, error)
}

// Handler provides HTTP handlers for diet plans
type Handler struct {
	store     Store
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandler creates a diet handler. Without a store plans are generated
// but not kept.
func NewHandler(store Store, publisher events.Publisher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, publisher: publisher, logger: logger, now: time.Now}
}

// GenerateRequest is the body of POST /patients/{patientID}/plans.
type GenerateRequest struct {
	Profile  Profile  `json:"profile"`
	Duration Duration `json:"duration,omitempty"`
}

// Routes registers the diet routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/patients/{patientID}/plans", func(r chi.Router) {
		r.Post("/", h.GeneratePlan)
		if h.store != nil {
			r.Get("/", h.ListPlans)
			r.Get("/{planID}", h.GetPlan)
		}
	})

	return r
}

// GeneratePlan handles POST /patients/{patientID}/plans
func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	patientID, err := h.patient(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	plan, err := Generate(patientID, req.Profile, req.Duration, h.now())
	if err != nil {
		writeError(w, err)
		return
	}

	if h.store != nil {
		if err := h.store.Create(r.Context(), plan); err != nil {
			writeError(w, err)
			return
		}
	}

	if h.publisher != nil {
		event := events.NewEvent(events.TypeDietPlanGenerated, "diet", map[string]any{
			"plan_id":      plan.ID,
			"duration":     plan.Duration,
			"calories":     plan.Goals.DailyCalories,
			"restrictions": len(plan.Restrictions),
		})
		if user := auth.GetUser(r.Context()); user != nil {
			event = event.WithActor(user.ID, user.UserType)
		}
		if err := h.publisher.Publish(r.Context(), event); err != nil {
			h.logger.Warn("failed to publish event", zap.String("type", event.Type), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusCreated, plan)
}

// ListPlans handles GET /patients/{patientID}/plans
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	patientID, err := h.patient(r)
	if err != nil {
		writeError(w, err)
		return
	}

	plans, err := h.store.ListByPatient(r.Context(), patientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": plans, "total": len(plans)})
}

// GetPlan handles GET /patients/{patientID}/plans/{planID}
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	patientID, err := h.patient(r)
	if err != nil {
		writeError(w, err)
		return
	}
	planID, err := types.ParseID(chi.URLParam(r, "planID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid plan ID"))
		return
	}

	plan, err := h.store.FindByID(r.Context(), patientID, planID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) patient(r *http.Request) (types.ID, error) {
	patientID, err := types.ParseID(chi.URLParam(r, "patientID"))
	if err != nil {
		return "", errors.BadRequest("invalid patient ID")
	}
	if user := auth.GetUser(r.Context()); user != nil && !user.CanReadPatient(patientID) {
		return "", errors.Forbidden("cannot access another patient's diet plans")
	}
	return patientID, nil
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
