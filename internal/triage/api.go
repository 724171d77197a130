package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vitavoice/platform/internal/i18n"
	"github.com/vitavoice/platform/internal/shared/auth"
	"github.com/vitavoice/platform/internal/shared/errors"
	"github.com/vitavoice/platform/internal/shared/events"
	"github.com/vitavoice/platform/internal/shared/metrics"
	"github.com/vitavoice/platform/internal/shared/types"
	"go.uber.org/zap"
)

// ResultRecorder persists diagnostic results for a patient.
type ResultRecorder interface {
	Record(ctx context.Context, patientID types.ID, result DiagnosticResult) error
}

// Handler provides HTTP handlers for triage
type Handler struct {
	engine    *Engine
	publisher events.Publisher
	recorder  ResultRecorder
	logger    *zap.Logger
}

// NewHandler creates a new triage handler. publisher and recorder may be nil.
func NewHandler(engine *Engine, publisher events.Publisher, recorder ResultRecorder, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:    engine,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

// Routes registers the triage routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/assess", h.Assess)
	r.Post("/emergency", h.CheckEmergency)

	r.Get("/protocols", h.ListProtocols)
	r.Get("/protocols/{key}", h.GetProtocol)

	r.Get("/severity/{score}", h.GetSeverity)
	r.Get("/risk-categories", h.ListRiskCategories)

	return r
}

// AssessRequest is the body of POST /assess
type AssessRequest struct {
	Symptoms      []Symptom   `json:"symptoms"`
	PatientInfo   PatientInfo `json:"patient_info"`
	MainComplaint string      `json:"main_complaint"`
	Language      string      `json:"language,omitempty"`
	PatientID     string      `json:"patient_id,omitempty"`
}

// Assess handles POST /assess
func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	lang, err := parseLanguage(req.Language)
	if err != nil {
		writeError(w, err)
		return
	}
	if details := validateSymptoms(req.Symptoms); len(details) > 0 {
		writeError(w, errors.Validation("invalid symptoms", details))
		return
	}
	if req.PatientInfo.Age < 0 || req.PatientInfo.Age > 130 {
		writeError(w, errors.Validation("invalid patient info", map[string]string{"patient_info.age": "must be between 0 and 130"}))
		return
	}
	patientID, err := resolvePatient(r.Context(), req.PatientID)
	if err != nil {
		writeError(w, err)
		return
	}

	for i := range req.Symptoms {
		if req.Symptoms[i].ID.IsZero() {
			req.Symptoms[i].ID = types.NewID()
		}
	}

	result := h.engine.Analyze(Assessment{
		Symptoms:      req.Symptoms,
		PatientInfo:   req.PatientInfo,
		MainComplaint: req.MainComplaint,
		Language:      lang,
	})

	h.afterAssessment(r, patientID, result)
	writeJSON(w, http.StatusOK, result)
}

// afterAssessment records metrics, publishes events and stores history.
// Failures are logged; the patient still gets their result.
func (h *Handler) afterAssessment(r *http.Request, patientID types.ID, result DiagnosticResult) {
	ctx := r.Context()
	metrics.RecordAssessment(string(result.Recommendation.Category), string(result.Confidence), len(result.PossibleConditions))

	if result.IsEmergency && result.EmergencyProtocol != nil {
		metrics.RecordEmergency(result.EmergencyProtocol.Key, string(result.EmergencyTrigger), result.UsedFallback)
		h.logger.Warn("emergency detected",
			zap.Stringer("result_id", result.ID),
			zap.String("protocol", result.EmergencyProtocol.Key),
			zap.Strings("keywords", result.MatchedKeywords),
			zap.Bool("fallback", result.UsedFallback),
		)
	}

	if h.publisher != nil {
		for _, event := range ResultEvents(result) {
			event = event.WithCorrelation(chimw.GetReqID(ctx))
			if !patientID.IsZero() {
				event = event.WithActor(patientID, auth.UserTypePatient)
			}
			if err := h.publisher.Publish(ctx, event); err != nil {
				h.logger.Warn("failed to publish event", zap.String("type", event.Type), zap.Error(err))
			}
		}
	}

	if h.recorder != nil && !patientID.IsZero() {
		if err := h.recorder.Record(ctx, patientID, result); err != nil {
			h.logger.Error("failed to record diagnostic history", zap.Stringer("result_id", result.ID), zap.Error(err))
		}
	}
}

// ResultEvents returns the domain events a result gives rise to.
func ResultEvents(result DiagnosticResult) []events.Event {
	summary := map[string]any{
		"result_id":   result.ID,
		"category":    result.Recommendation.Category,
		"confidence":  result.Confidence,
		"emergency":   result.IsEmergency,
		"language":    result.Assessment.Language,
		"conditions":  len(result.PossibleConditions),
		"assessed_at": result.Timestamp,
	}
	if len(result.PossibleConditions) > 0 {
		summary["top_condition"] = result.PossibleConditions[0].DiseaseName
	}

	out := []events.Event{events.NewEvent(events.TypeAssessmentCompleted, "triage", summary)}
	if result.IsEmergency && result.EmergencyProtocol != nil {
		out = append(out, events.NewEvent(events.TypeEmergencyDetected, "triage", map[string]any{
			"result_id": result.ID,
			"protocol":  result.EmergencyProtocol.Key,
			"condition": result.EmergencyProtocol.Condition,
			"keywords":  result.MatchedKeywords,
			"trigger":   result.EmergencyTrigger,
			"fallback":  result.UsedFallback,
		}))
	}
	return out
}

// EmergencyRequest is the body of POST /emergency
type EmergencyRequest struct {
	Symptoms []Symptom `json:"symptoms"`
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
}

// CheckEmergency handles POST /emergency
func (h *Handler) CheckEmergency(w http.ResponseWriter, r *http.Request) {
	var req EmergencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}
	if req.Text == "" && len(req.Symptoms) == 0 {
		writeError(w, errors.BadRequest("text or symptoms is required"))
		return
	}
	lang, err := parseLanguage(req.Language)
	if err != nil {
		writeError(w, err)
		return
	}

	check := h.engine.Detector().Detect(req.Symptoms, req.Text, lang)
	if check.IsEmergency && check.Protocol != nil {
		metrics.RecordEmergency(check.Protocol.Key, string(check.Trigger), check.UsedFallback)
	}

	writeJSON(w, http.StatusOK, check)
}

func (h *Handler) ListProtocols(w http.ResponseWriter, r *http.Request) {
	d := h.engine.Detector()
	writeJSON(w, http.StatusOK, map[string]any{
		"data":     d.Protocols(),
		"fallback": d.FallbackProtocol(),
	})
}

func (h *Handler) GetProtocol(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	p, ok := h.engine.Detector().Protocol(key)
	if !ok {
		writeError(w, errors.NotFound("protocol", key))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetSeverity handles GET /severity/{score}
func (h *Handler) GetSeverity(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(chi.URLParam(r, "score"))
	if err != nil || score < 0 || score > 10 {
		writeError(w, errors.BadRequest("score must be an integer between 0 and 10"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"score": score,
		"level": SeverityLevel(score),
	})
}

func (h *Handler) ListRiskCategories(w http.ResponseWriter, r *http.Request) {
	var bands []ConfidenceBand
	for _, level := range []ConfidenceLevel{ConfidenceLow, ConfidenceMedium, ConfidenceHigh} {
		band, _ := ConfidenceRange(level)
		bands = append(bands, band)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": RiskCategories(),
		"confidence": bands,
		"ambulance":  "108",
		"min_match":  MinMatchConfidence,
	})
}

// --- Helpers ---

func parseLanguage(raw string) (i18n.Code, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	code, ok := i18n.ParseCode(raw)
	if !ok {
		return "", errors.Validation("unsupported language", map[string]string{"language": raw})
	}
	return code, nil
}

func validateSymptoms(symptoms []Symptom) map[string]string {
	details := make(map[string]string)
	for i, s := range symptoms {
		if strings.TrimSpace(s.Name) == "" {
			details[fmt.Sprintf("symptoms[%d].name", i)] = "is required"
		}
		if s.Severity < 1 || s.Severity > 10 {
			details[fmt.Sprintf("symptoms[%d].severity", i)] = "must be between 1 and 10"
		}
	}
	return details
}

// resolvePatient picks the patient a result belongs to. Authenticated
// patients always record for themselves; doctors may name a patient.
func resolvePatient(ctx context.Context, raw string) (types.ID, error) {
	var id types.ID
	if raw != "" {
		parsed, err := types.ParseID(raw)
		if err != nil {
			return "", errors.BadRequest("invalid patient_id")
		}
		id = parsed
	}

	user := auth.GetUser(ctx)
	if user == nil {
		return id, nil
	}
	if id.IsZero() {
		return user.ID, nil
	}
	if !user.CanReadPatient(id) {
		return "", errors.Forbidden("cannot record results for another patient")
	}
	return id, nil
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
