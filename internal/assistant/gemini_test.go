package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vitavoice/platform/internal/shared/config"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient(config.GeminiConfig{
		APIKey:          "test-key",
		Endpoint:        server.URL + "/",
		Model:           "test-model",
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 1024,
		Timeout:         time.Second,
	})
	if err != nil {
		t.Fatalf("Expected client, got %v", err)
	}
	return client
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	if _, err := NewGeminiClient(config.GeminiConfig{}); err == nil {
		t.Error("Expected error without API key")
	}
}

func TestGeminiRequest(t *testing.T) {
	var got geminiRequest
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/models/test-model:generateContent" {
			t.Errorf("Expected POST to generateContent, got %s %s", r.Method, r.URL.Path)
		}
		if key := r.Header.Get("x-goog-api-key"); key != "test-key" {
			t.Errorf("Expected API key header, got %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Expected JSON body, got %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  How long "},{"text":"have you had it?  "}]}}]}`))
	})

	text, err := client.Generate(context.Background(), GenerateRequest{
		SystemPrompt: "be kind",
		History: []Turn{
			{Role: RoleModel, Text: "Hello"},
			{Role: RoleUser, Text: "I have fever"},
		},
	})
	if err != nil {
		t.Fatalf("Expected text, got %v", err)
	}
	if text != "How long have you had it?" {
		t.Errorf("Expected joined trimmed parts, got %q", text)
	}

	if len(got.Contents) != 3 {
		t.Fatalf("Expected prompt plus 2 turns, got %d", len(got.Contents))
	}
	roles := []string{"user", "model", "user"}
	texts := []string{"be kind", "Hello", "I have fever"}
	for i, c := range got.Contents {
		if c.Role != roles[i] || c.Parts[0].Text != texts[i] {
			t.Errorf("Content %d: Expected %s %q, got %s %q", i, roles[i], texts[i], c.Role, c.Parts[0].Text)
		}
	}

	cfg := got.GenerationConfig
	if cfg.Temperature != 0.7 || cfg.TopK != 40 || cfg.TopP != 0.95 || cfg.MaxOutputTokens != 1024 {
		t.Errorf("Expected configured generation settings, got %+v", cfg)
	}
	if len(got.SafetySettings) != 4 {
		t.Fatalf("Expected 4 safety settings, got %d", len(got.SafetySettings))
	}
	for _, s := range got.SafetySettings {
		if s.Threshold != "BLOCK_MEDIUM_AND_ABOVE" {
			t.Errorf("Expected medium threshold for %s, got %s", s.Category, s.Threshold)
		}
	}
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected error
		message  string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`, ErrRateLimited, "quota exceeded"},
		{"unavailable", http.StatusServiceUnavailable, ``, ErrGeneratorUnavailable, "Service Unavailable"},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"internal"}}`, ErrGenerationFailed, "status 500"},
		{"bad request", http.StatusBadRequest, `not json`, ErrGenerationFailed, "Bad Request"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, ErrEmptyCompletion, ""},
		{"blank text", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`, ErrEmptyCompletion, ""},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, ErrGenerationFailed, "SAFETY"},
		{"malformed", http.StatusOK, `{"candidates":`, ErrGenerationFailed, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), GenerateRequest{SystemPrompt: "x"})
			if !errors.Is(err, tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Expected error to mention %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestGeminiTimeout(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, GenerateRequest{SystemPrompt: "x"})
	if !errors.Is(err, ErrGeneratorUnavailable) {
		t.Errorf("Expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestFailureReason(t *testing.T) {
	tests := map[error]string{
		ErrRateLimited:          "rate_limited",
		ErrGeneratorUnavailable: "unavailable",
		ErrEmptyCompletion:      "empty",
		ErrGenerationFailed:     "failed",
		errors.New("other"):     "other",
	}
	for err, expected := range tests {
		if got := failureReason(err); got != expected {
			t.Errorf("%v: Expected %s, got %s", err, expected, got)
		}
	}
}
