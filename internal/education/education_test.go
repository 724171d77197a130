package education

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/vitavoice/platform/internal/shared/auth"
	"github.com/vitavoice/platform/internal/shared/types"
	"go.uber.org/zap"
)

func topicIDs(ts []Topic) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

// --- Library Tests ---

func TestByCategory(t *testing.T) {
	tests := []struct {
		category Category
		count    int
	}{
		{CategoryPrevention, 3},
		{CategoryHygiene, 2},
		{CategoryNutrition, 2},
		{CategoryFirstAid, 2},
		{CategoryMaternal, 2},
		{CategoryChild, 1},
		{CategoryChronic, 2},
		{"surgery", 0},
	}

	total := 0
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := ByCategory(tt.category); len(got) != tt.count {
				t.Errorf("Expected %d topics, got %d", tt.count, len(got))
			}
		})
		total += tt.count
	}
	if len(All()) != total {
		t.Errorf("Expected %d topics in total, got %d", total, len(All()))
	}
}

func TestTopicsAreWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, topic := range All() {
		if seen[topic.ID] {
			t.Errorf("Expected unique topic ID, got duplicate %s", topic.ID)
		}
		seen[topic.ID] = true
		if !topic.Category.valid() {
			t.Errorf("Expected known category for %s, got %s", topic.ID, topic.Category)
		}
		if len(topic.KeyPoints) == 0 {
			t.Errorf("Expected key points for %s", topic.ID)
		}
		for _, rid := range topic.RelatedTopics {
			if _, ok := Find(rid); !ok || rid == topic.ID {
				t.Errorf("Expected %s to link an existing other topic, got %s", topic.ID, rid)
			}
		}
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"mosquito", []string{"malaria_prevention", "dengue_prevention"}},
		{"MOSQUITO", []string{"malaria_prevention", "dengue_prevention"}},
		{"  tetanus ", []string{"antenatal_care"}},
		{"zinc", []string{"diarrhea_management"}},
		{"surgery", []string{}},
		{"   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := topicIDs(Search(tt.query)); !slices.Equal(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRelated(t *testing.T) {
	got := topicIDs(Related("diarrhea_management"))
	want := []string{"safe_water", "handwashing", "child_nutrition"}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := Related("unknown"); len(got) != 0 {
		t.Errorf("Expected nothing for unknown topic, got %v", got)
	}
}

// --- Tracker Tests ---

func TestMemoryTracker(t *testing.T) {
	ctx := context.Background()
	tracker := NewMemoryTracker()
	alice := types.NewDeterministicID("user", "alice")
	bob := types.NewDeterministicID("user", "bob")

	tracker.MarkRead(ctx, alice, "snake_bite")
	tracker.MarkRead(ctx, alice, "handwashing")
	tracker.MarkRead(ctx, alice, "snake_bite")

	got, _ := tracker.ReadTopics(ctx, alice)
	if !slices.Equal(got, []string{"handwashing", "snake_bite"}) {
		t.Errorf("Expected two distinct sorted topics, got %v", got)
	}
	if got, _ := tracker.ReadTopics(ctx, bob); len(got) != 0 {
		t.Errorf("Expected nothing read by bob, got %v", got)
	}
}

func TestRedisTrackerKey(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()
	tracker := NewRedisTracker(client)

	id := types.NewDeterministicID("user", "alice")
	if got := tracker.key(id); got != "vitavoice:education:read:"+id.String() {
		t.Errorf("Expected prefixed key, got %q", got)
	}
}

// --- Handler Tests ---

func TestHandler(t *testing.T) {
	router := NewHandler(NewMemoryTracker(), zap.NewNop()).Routes()
	user := &auth.User{ID: types.NewDeterministicID("user", "alice"), UserType: auth.UserTypePatient}

	tests := []struct {
		name   string
		method string
		path   string
		user   *auth.User
		status int
		total  int
	}{
		{"categories", http.MethodGet, "/categories", nil, http.StatusOK, -1},
		{"all topics", http.MethodGet, "/topics", nil, http.StatusOK, 14},
		{"by category", http.MethodGet, "/topics?category=first_aid", nil, http.StatusOK, 2},
		{"search", http.MethodGet, "/topics?q=water", nil, http.StatusOK, 5},
		{"search within category", http.MethodGet, "/topics?q=water&category=hygiene", nil, http.StatusOK, 2},
		{"unknown category", http.MethodGet, "/topics?category=surgery", nil, http.StatusBadRequest, -1},
		{"topic", http.MethodGet, "/topics/snake_bite", nil, http.StatusOK, -1},
		{"missing topic", http.MethodGet, "/topics/surgery", nil, http.StatusNotFound, -1},
		{"related", http.MethodGet, "/topics/snake_bite/related", nil, http.StatusOK, -1},
		{"related of missing topic", http.MethodGet, "/topics/surgery/related", nil, http.StatusNotFound, -1},
		{"mark read anonymously", http.MethodPost, "/topics/snake_bite/read", nil, http.StatusUnauthorized, -1},
		{"mark missing topic read", http.MethodPost, "/topics/surgery/read", user, http.StatusNotFound, -1},
		{"mark read", http.MethodPost, "/topics/snake_bite/read", user, http.StatusNoContent, -1},
		{"read list", http.MethodGet, "/read", user, http.StatusOK, 1},
		{"read list anonymously", http.MethodGet, "/read", nil, http.StatusUnauthorized, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.user != nil {
				req = req.WithContext(auth.WithUser(req.Context(), tt.user))
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("Expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if tt.total < 0 {
				return
			}
			var resp struct {
				Total int `json:"total"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Expected JSON, got %v", err)
			}
			if resp.Total != tt.total {
				t.Errorf("Expected total %d, got %d", tt.total, resp.Total)
			}
		})
	}
}

func TestHandlerWithoutTracker(t *testing.T) {
	router := NewHandler(nil, nil).Routes()
	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
