package i18n

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		text     string
		expected Code
	}{
		{"I have chest pain", English},
		{"", English},
		{"மார்பு வலி", Tamil},
		{"ఛాతీ నొప్పి", Telugu},
		{"सीने में दर्द", Hindi},
		{"বুকে ব্যথা", Bengali},
		{"ಎದೆ ನೋವು", Kannada},
		{"നെഞ്ചുവേദന", Malayalam},
		{"fever and காய்ச்சல்", Tamil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTranslateFallsBack(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		name     string
		key      string
		lang     Code
		expected string
	}{
		{"localized", KeyMainProblem, Hindi, "मुख्य समस्या क्या है?"},
		{"english", KeySeeDoctor, English, "Please consult a doctor"},
		{"missing in language", KeyEmergencyDetected, Telugu, "Emergency detected! Redirecting to emergency services..."},
		{"unknown language", KeyWhenStarted, Code("fr"), "When did it start?"},
		{"unknown key", "no_such_key", Tamil, "no_such_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Translate(tt.key, tt.lang); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestAllFillsGapsWithEnglish(t *testing.T) {
	tr := NewTranslator()
	all := tr.All(Telugu)

	if all[KeyMainProblem] != "ముఖ్య సమస్య ఏమిటి?" {
		t.Errorf("Expected Telugu main problem, got %q", all[KeyMainProblem])
	}
	if all[KeyPossibleCondition] != "Possible condition" {
		t.Errorf("Expected English fallback, got %q", all[KeyPossibleCondition])
	}

	all[KeyMainProblem] = "mutated"
	if tr.Translate(KeyMainProblem, Telugu) == "mutated" {
		t.Error("Expected All to return a copy")
	}
}

func TestEveryLanguageHasCoreKeys(t *testing.T) {
	keys := []string{KeyMainProblem, KeyWhenStarted, KeySeverityQuestion, KeyAnyPain, KeyBreathingOK, KeySeeDoctor, KeyEmergencyCall}
	for _, info := range Languages() {
		for _, key := range keys {
			if _, ok := translations[info.Code][key]; !ok {
				t.Errorf("Language %s is missing key %s", info.Code, key)
			}
		}
	}
}

func TestParseCode(t *testing.T) {
	tests := []struct {
		input    string
		expected Code
		ok       bool
	}{
		{"ta", Tamil, true},
		{"ta-IN", Tamil, true},
		{"HI", Hindi, true},
		{"fr", Code("fr"), false},
		{"%%", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			code, ok := ParseCode(tt.input)
			if ok != tt.ok || code != tt.expected {
				t.Errorf("Expected (%s, %v), got (%s, %v)", tt.expected, tt.ok, code, ok)
			}
		})
	}
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		header   string
		expected Code
	}{
		{"", English},
		{"ta-IN,ta;q=0.9,en;q=0.8", Tamil},
		{"ml", Malayalam},
		{"de-DE", English},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := Negotiate(tt.header); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestFoldAndTokenize(t *testing.T) {
	if got := Fold("  Chest   PAIN "); got != "chest pain" {
		t.Errorf("Expected 'chest pain', got %q", got)
	}

	tokens := Tokenize("Severe headache, since morning!")
	expected := []string{"severe", "headache", "since", "morning"}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, tokens)
	}
	for i := range expected {
		if tokens[i] != expected[i] {
			t.Errorf("Expected token %q, got %q", expected[i], tokens[i])
		}
	}

	if tokens := Tokenize("தலைவலி"); len(tokens) != 1 {
		t.Errorf("Expected Tamil word to stay whole, got %v", tokens)
	}
}

func TestHandler(t *testing.T) {
	h := NewHandler(NewTranslator())
	router := h.Routes()

	req := httptest.NewRequest(http.MethodPost, "/detect", strings.NewReader(`{"text":"बुखार है"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var info Info
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if info.Code != Hindi || info.Locale != "hi-IN" {
		t.Errorf("Expected hi / hi-IN, got %s / %s", info.Code, info.Locale)
	}

	req = httptest.NewRequest(http.MethodGet, "/xx/translations", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
