package assistant

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vitavoice/platform/internal/i18n"
	"github.com/vitavoice/platform/internal/shared/auth"
	"github.com/vitavoice/platform/internal/shared/errors"
	"github.com/vitavoice/platform/internal/shared/middleware"
	"github.com/vitavoice/platform/internal/shared/types"
	"github.com/vitavoice/platform/internal/triage"
)

// Handler provides HTTP handlers for assistant conversations
type Handler struct {
	service *Service
	limiter *middleware.IPRateLimiter
}

// NewHandler creates a new assistant handler. limiter may be nil.
func NewHandler(service *Service, limiter *middleware.IPRateLimiter) *Handler {
	return &Handler{service: service, limiter: limiter}
}

// Routes registers the assistant routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	if h.limiter != nil {
		r.Use(h.limiter.Middleware)
	}

	r.Post("/sessions", h.StartSession)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.EndSession)
		r.Post("/messages", h.SendMessage)
		r.Post("/reset", h.ResetSession)
	})

	return r
}

// StartSessionRequest is the body of POST /sessions
type StartSessionRequest struct {
	Language    string              `json:"language,omitempty"`
	PatientInfo *triage.PatientInfo `json:"patient_info,omitempty"`
	PatientID   string              `json:"patient_id,omitempty"`
}

// StartSession handles POST /sessions. Without a language in the body the
// Accept-Language header decides.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	lang := i18n.Negotiate(r.Header.Get("Accept-Language"))
	if req.Language != "" {
		code, ok := i18n.ParseCode(req.Language)
		if !ok {
			writeError(w, errors.Validation("unsupported language", map[string]string{"language": req.Language}))
			return
		}
		lang = code
	}

	patientID, err := resolvePatient(r, req.PatientID)
	if err != nil {
		writeError(w, err)
		return
	}

	conv, err := h.service.Start(r.Context(), patientID, lang, req.PatientInfo)
	if err != nil {
		writeError(w, errors.Internal(err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"conversation": conv,
		"greeting":     conv.History[0].Text,
	})
}

// GetSession handles GET /sessions/{sessionID}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	conv, err := h.authorized(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// MessageRequest is the body of POST /sessions/{sessionID}/messages
type MessageRequest struct {
	Message string `json:"message"`
}

// SendMessage handles POST /sessions/{sessionID}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	conv, err := h.authorized(r)
	if err != nil {
		writeError(w, err)
		return
	}

	reply, err := h.service.Chat(r.Context(), conv.ID, req.Message)
	if err != nil {
		writeError(w, serviceError(err, conv.ID))
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// ResetSession handles POST /sessions/{sessionID}/reset
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	conv, err := h.authorized(r)
	if err != nil {
		writeError(w, err)
		return
	}

	reset, err := h.service.Reset(r.Context(), conv.ID)
	if err != nil {
		writeError(w, serviceError(err, conv.ID))
		return
	}
	writeJSON(w, http.StatusOK, reset)
}

// EndSession handles DELETE /sessions/{sessionID}
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	conv, err := h.authorized(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.End(r.Context(), conv.ID); err != nil {
		writeError(w, serviceError(err, conv.ID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorized loads the conversation in the URL. Conversations of other
// patients are reported as missing.
func (h *Handler) authorized(r *http.Request) (*Conversation, error) {
	id, err := types.ParseID(chi.URLParam(r, "sessionID"))
	if err != nil {
		return nil, errors.BadRequest("invalid session ID")
	}

	conv, err := h.service.Context(r.Context(), id)
	if err != nil {
		return nil, serviceError(err, id)
	}

	user := auth.GetUser(r.Context())
	if user != nil && !conv.PatientID.IsZero() && !user.CanReadPatient(conv.PatientID) {
		return nil, errors.NotFound("conversation", id.String())
	}
	return conv, nil
}

func resolvePatient(r *http.Request, raw string) (types.ID, error) {
	var id types.ID
	if raw != "" {
		parsed, err := types.ParseID(raw)
		if err != nil {
			return "", errors.BadRequest("invalid patient_id")
		}
		id = parsed
	}

	user := auth.GetUser(r.Context())
	if user == nil {
		return id, nil
	}
	if id.IsZero() {
		return user.ID, nil
	}
	if !user.CanReadPatient(id) {
		return "", errors.Forbidden("cannot start a conversation for another patient")
	}
	return id, nil
}

func serviceError(err error, id types.ID) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return errors.NotFound("conversation", id.String())
	case errors.Is(err, ErrEmptyMessage):
		return errors.BadRequest("message is required")
	default:
		return errors.Internal(err)
	}
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
