package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vitavoice/platform/internal/shared/config"
	"github.com/vitavoice/platform/internal/shared/types"
)

var testConfig = config.AuthConfig{JWTSecret: "test-secret", Issuer: "vitavoice"}

func TestTokenRoundTrip(t *testing.T) {
	patient := User{ID: types.NewID(), UserType: UserTypePatient, Language: "ta"}

	token, err := NewToken(testConfig, patient, time.Hour)
	if err != nil {
		t.Fatalf("Expected token, got %v", err)
	}

	user, err := ParseToken(testConfig, token)
	if err != nil {
		t.Fatalf("Expected valid token, got %v", err)
	}
	if user.ID != patient.ID || user.UserType != UserTypePatient || user.Language != "ta" {
		t.Errorf("Expected %+v, got %+v", patient, user)
	}
}

func TestParseTokenRejects(t *testing.T) {
	user := User{ID: types.NewID(), UserType: UserTypePatient}

	expired, _ := NewToken(testConfig, user, -time.Minute)
	otherIssuer, _ := NewToken(config.AuthConfig{JWTSecret: "test-secret", Issuer: "someone-else"}, user, time.Hour)
	otherSecret, _ := NewToken(config.AuthConfig{JWTSecret: "other", Issuer: "vitavoice"}, user, time.Hour)
	noSubject, _ := NewToken(testConfig, User{UserType: UserTypePatient}, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong issuer", otherIssuer},
		{"wrong secret", otherSecret},
		{"no subject", noSubject},
		{"garbage", "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(testConfig, tt.token); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	var seen *User
	handler := Middleware(testConfig)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without header, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for basic auth, got %d", rec.Code)
	}

	id := types.NewID()
	token, _ := NewToken(testConfig, User{ID: id, UserType: UserTypeDoctor}, time.Hour)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rec.Code)
	}
	if seen == nil || seen.ID != id {
		t.Errorf("Expected user %s in context, got %+v", id, seen)
	}
}

func TestRequireRoles(t *testing.T) {
	handler := RequireRoles(UserTypeDoctor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		user     *User
		expected int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"patient", &User{ID: types.NewID(), UserType: UserTypePatient}, http.StatusForbidden},
		{"doctor", &User{ID: types.NewID(), UserType: UserTypeDoctor}, http.StatusOK},
		{"doctor role", &User{ID: types.NewID(), UserType: UserTypePatient, Roles: []string{UserTypeDoctor}}, http.StatusOK},
		{"admin", &User{ID: types.NewID(), UserType: UserTypeAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestCanReadPatient(t *testing.T) {
	patientID := types.NewID()

	if !(&User{ID: patientID, UserType: UserTypePatient}).CanReadPatient(patientID) {
		t.Error("Expected patients to read their own records")
	}
	if (&User{ID: types.NewID(), UserType: UserTypePatient}).CanReadPatient(patientID) {
		t.Error("Expected patients not to read other records")
	}
	if !(&User{ID: types.NewID(), UserType: UserTypeDoctor}).CanReadPatient(patientID) {
		t.Error("Expected doctors to read patient records")
	}
}
