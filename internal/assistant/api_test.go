package assistant

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vitavoice/platform/internal/i18n"
	"github.com/vitavoice/platform/internal/shared/auth"
	"github.com/vitavoice/platform/internal/shared/middleware"
	"github.com/vitavoice/platform/internal/shared/types"
)

type sessionResponse struct {
	Conversation Conversation `json:"conversation"`
	Greeting     string       `json:"greeting"`
}

type testServer struct {
	router http.Handler
	*fixture
}

func newTestServer(t *testing.T, limiter *middleware.IPRateLimiter) *testServer {
	t.Helper()
	f := newFixture(t, nil)
	return &testServer{router: NewHandler(f.service, limiter).Routes(), fixture: f}
}

func (s *testServer) do(method, path, body string, user *auth.User, header ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	if user != nil {
		req = req.WithContext(auth.WithUser(req.Context(), user))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) startSession(t *testing.T, body string, user *auth.User, header ...string) sessionResponse {
	t.Helper()
	w := s.do(http.MethodPost, "/sessions", body, user, header...)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp sessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode session: %v", err)
	}
	return resp
}

func TestStartSessionHandler(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("empty body", func(t *testing.T) {
		resp := s.startSession(t, "", nil)
		if resp.Conversation.Language != i18n.English || resp.Conversation.Stage != StageInitial {
			t.Errorf("Expected English initial conversation, got %s %s", resp.Conversation.Language, resp.Conversation.Stage)
		}
		if !strings.HasPrefix(resp.Greeting, "Hello!") {
			t.Errorf("Expected greeting, got %q", resp.Greeting)
		}
	})

	t.Run("accept language", func(t *testing.T) {
		resp := s.startSession(t, "", nil, "Accept-Language", "ta-IN,ta;q=0.9,en;q=0.5")
		if resp.Conversation.Language != i18n.Tamil {
			t.Errorf("Expected ta, got %s", resp.Conversation.Language)
		}
	})

	t.Run("body language wins", func(t *testing.T) {
		resp := s.startSession(t, `{"language":"hi-IN"}`, nil, "Accept-Language", "ta")
		if resp.Conversation.Language != i18n.Hindi {
			t.Errorf("Expected hi, got %s", resp.Conversation.Language)
		}
	})

	t.Run("patient info", func(t *testing.T) {
		resp := s.startSession(t, `{"patient_info":{"age":70,"gender":"male"}}`, nil)
		if resp.Conversation.Patient == nil || resp.Conversation.Patient.Age != 70 {
			t.Errorf("Expected patient info kept, got %+v", resp.Conversation.Patient)
		}
	})

	t.Run("authenticated patient", func(t *testing.T) {
		user := &auth.User{ID: types.NewID(), UserType: auth.UserTypePatient}
		resp := s.startSession(t, "", user)
		if resp.Conversation.PatientID != user.ID {
			t.Errorf("Expected conversation for %s, got %s", user.ID, resp.Conversation.PatientID)
		}
	})

	tests := []struct {
		name     string
		body     string
		user     *auth.User
		expected int
		code     string
	}{
		{"unsupported language", `{"language":"fr"}`, nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid json", `{`, nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"invalid patient id", `{"patient_id":"nope"}`, nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"other patient", `{"patient_id":"` + types.NewID().String() + `"}`,
			&auth.User{ID: types.NewID(), UserType: auth.UserTypePatient}, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/sessions", tt.body, tt.user)
			if w.Code != tt.expected {
				t.Fatalf("Expected %d, got %d: %s", tt.expected, w.Code, w.Body.String())
			}
			var body map[string]any
			json.NewDecoder(w.Body).Decode(&body)
			if body["code"] != tt.code {
				t.Errorf("Expected code %s, got %v", tt.code, body["code"])
			}
		})
	}
}

func TestSessionLifecycleHandler(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.startSession(t, "", nil).Conversation.ID.String()

	w := s.do(http.MethodPost, "/sessions/"+id+"/messages", `{"message":"I have fever"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var reply Reply
	json.NewDecoder(w.Body).Decode(&reply)
	if reply.ConversationID.String() != id || reply.Text != "What is the main problem?" {
		t.Errorf("Expected main problem question, got %+v", reply)
	}

	w = s.do(http.MethodPost, "/sessions/"+id+"/messages", `{"message":"  "}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty message, got %d", w.Code)
	}

	w = s.do(http.MethodGet, "/sessions/"+id, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var conv Conversation
	json.NewDecoder(w.Body).Decode(&conv)
	if len(conv.History) != 3 || len(conv.CurrentSymptoms) != 1 {
		t.Errorf("Expected 3 turns and 1 symptom, got %d and %d", len(conv.History), len(conv.CurrentSymptoms))
	}

	w = s.do(http.MethodPost, "/sessions/"+id+"/reset", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on reset, got %d", w.Code)
	}
	var reset Conversation
	json.NewDecoder(w.Body).Decode(&reset)
	if reset.ID.String() != id || len(reset.History) != 1 {
		t.Errorf("Expected reset conversation, got %+v", reset)
	}

	if w = s.do(http.MethodDelete, "/sessions/"+id, "", nil); w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if w = s.do(http.MethodGet, "/sessions/"+id, "", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
	if w = s.do(http.MethodPost, "/sessions/"+id+"/messages", `{"message":"hello"}`, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for message to ended session, got %d", w.Code)
	}
}

func TestSessionAccessHandler(t *testing.T) {
	s := newTestServer(t, nil)
	owner := &auth.User{ID: types.NewID(), UserType: auth.UserTypePatient}
	id := s.startSession(t, "", owner).Conversation.ID.String()

	tests := []struct {
		name     string
		path     string
		user     *auth.User
		expected int
	}{
		{"owner", "/sessions/" + id, owner, http.StatusOK},
		{"other patient", "/sessions/" + id, &auth.User{ID: types.NewID(), UserType: auth.UserTypePatient}, http.StatusNotFound},
		{"doctor", "/sessions/" + id, &auth.User{ID: types.NewID(), UserType: auth.UserTypeDoctor}, http.StatusOK},
		{"invalid id", "/sessions/not-an-id", owner, http.StatusBadRequest},
		{"unknown id", "/sessions/" + types.NewID().String(), owner, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := s.do(http.MethodGet, tt.path, "", tt.user); w.Code != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, w.Code)
			}
		})
	}
}

func TestEmergencyMessageHandler(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.startSession(t, `{"language":"ta"}`, nil).Conversation.ID.String()

	w := s.do(http.MethodPost, "/sessions/"+id+"/messages", `{"message":"அவர் மயக்கம் அடைந்தார்"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var reply Reply
	json.NewDecoder(w.Body).Decode(&reply)
	if reply.Source != SourceEmergency || reply.Emergency == nil || reply.Emergency.Key != "UNCONSCIOUS" {
		t.Errorf("Expected UNCONSCIOUS emergency, got %+v", reply)
	}
}

func TestRateLimitedHandler(t *testing.T) {
	s := newTestServer(t, middleware.NewIPRateLimiter(1, 1))

	if w := s.do(http.MethodPost, "/sessions", "", nil); w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}
	if w := s.do(http.MethodPost, "/sessions", "", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}
}
