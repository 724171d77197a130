package education

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vitavoice/platform/internal/shared/auth"
	"github.com/vitavoice/platform/internal/shared/errors"
	"go.uber.org/zap"
)

// Handler provides HTTP handlers for the education library
type Handler struct {
	tracker ReadTracker
	logger  *zap.Logger
}

// NewHandler creates an education handler. Read tracking is served only
// when tracker is non-nil.
func NewHandler(tracker ReadTracker, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{tracker: tracker, logger: logger}
}

// Routes registers the education routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/categories", h.ListCategories)
	r.Get("/topics", h.ListTopics)
	r.Get("/topics/{topicID}", h.GetTopic)
	r.Get("/topics/{topicID}/related", h.GetRelated)

	if h.tracker != nil {
		r.Post("/topics/{topicID}/read", h.MarkRead)
		r.Get("/read", h.ListRead)
	}

	return r
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": Categories()})
}

// ListTopics handles GET /topics?category=&q=
func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := Category(q.Get("category"))
	if category != "" && !category.valid() {
		writeError(w, errors.Validation("invalid category", map[string]string{"category": string(category)}))
		return
	}

	var result []Topic
	switch {
	case q.Get("q") != "":
		result = Search(q.Get("q"))
		if category != "" {
			result = filterCategory(result, category)
		}
	case category != "":
		result = ByCategory(category)
	default:
		result = All()
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": result, "total": len(result)})
}

// GetTopic handles GET /topics/{topicID}
func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "topicID")
	t, ok := Find(id)
	if !ok {
		writeError(w, errors.NotFound("topic", id))
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// GetRelated handles GET /topics/{topicID}/related
func (h *Handler) GetRelated(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "topicID")
	if _, ok := Find(id); !ok {
		writeError(w, errors.NotFound("topic", id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": Related(id)})
}

// MarkRead handles POST /topics/{topicID}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		writeError(w, errors.Unauthorized("authentication required"))
		return
	}
	id := chi.URLParam(r, "topicID")
	if _, ok := Find(id); !ok {
		writeError(w, errors.NotFound("topic", id))
		return
	}

	if err := h.tracker.MarkRead(r.Context(), user.ID, id); err != nil {
		h.logger.Error("failed to mark topic read", zap.String("topic", id), zap.Error(err))
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRead handles GET /read
func (h *Handler) ListRead(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		writeError(w, errors.Unauthorized("authentication required"))
		return
	}

	ids, err := h.tracker.ReadTopics(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to load read topics", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  ids,
		"total": len(ids),
		"of":    len(topics),
	})
}

func filterCategory(in []Topic, c Category) []Topic {
	out := []Topic{}
	for _, t := range in {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
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
