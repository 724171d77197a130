package vaccination

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vitavoice/platform/internal/shared/auth"
	"github.com/vitavoice/platform/internal/shared/errors"
	"github.com/vitavoice/platform/internal/shared/events"
	"github.com/vitavoice/platform/internal/shared/types"
	"go.uber.org/zap"
)

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type memoryStore struct {
	mu      sync.Mutex
	records []Record
}

func (s *memoryStore) Create(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *rec)
	return nil
}

func (s *memoryStore) ListByPatient(_ context.Context, patientID types.ID) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Record{}
	for _, r := range s.records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memoryStore) Delete(_ context.Context, patientID, recordID types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == recordID && r.PatientID == patientID {
			s.records = slices.Delete(s.records, i, i+1)
			return nil
		}
	}
	return errors.NotFound("vaccination record", recordID.String())
}

type memoryPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *memoryPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func given(ids ...string) []Record {
	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		v, _ := Lookup(id)
		records = append(records, Record{ID: types.NewID(), VaccineID: v.ID, VaccineName: v.Name, DoseNumber: 1, IsCompleted: true})
	}
	return records
}

func ids(vaccines []Vaccine) []string {
	out := make([]string, len(vaccines))
	for i, v := range vaccines {
		out[i] = v.ID
	}
	return out
}

// --- Schedule Tests ---

func TestSchedule(t *testing.T) {
	tests := []struct {
		category Category
		count    int
	}{
		{"", 25},
		{CategoryInfant, 17},
		{CategoryChild, 6},
		{CategoryPregnancy, 2},
		{CategoryAdult, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := Schedule(tt.category)
			if len(got) != tt.count {
				t.Errorf("Expected %d vaccines, got %d", tt.count, len(got))
			}
			for _, v := range got {
				if tt.category != "" && v.Category != tt.category {
					t.Errorf("Expected category %s, got %s for %s", tt.category, v.Category, v.ID)
				}
			}
		})
	}

	all := Schedule("")
	all[0].Name = "changed"
	if v, _ := Lookup(all[0].ID); v.Name == "changed" {
		t.Error("Expected Schedule to return a copy")
	}
}

// --- Status Tests ---

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		records    []Record
		profile    Profile
		due        []string
		overdue    int
		upcoming   int
		completion int
	}{
		{
			name:       "two month old on track",
			records:    given("bcg", "opv_0", "hep_b_0", "opv_1"),
			profile:    Profile{AgeMonths: 2},
			due:        []string{"pentavalent_1", "rotavirus_1", "pcv_1"},
			overdue:    0,
			upcoming:   9,
			completion: 57,
		},
		{
			name:       "one year old with nothing given",
			profile:    Profile{AgeMonths: 12},
			due:        []string{"pcv_booster"},
			overdue:    17,
			upcoming:   0,
			completion: 0,
		},
		{
			name:       "pregnant adult",
			records:    given("td_1"),
			profile:    Profile{AgeMonths: 300, Pregnant: true},
			due:        []string{"td_2"},
			overdue:    23,
			upcoming:   0,
			completion: 4,
		},
		{
			name:       "pregnancy vaccines ignored otherwise",
			profile:    Profile{AgeMonths: 300},
			due:        []string{},
			overdue:    23,
			upcoming:   0,
			completion: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Evaluate(tt.records, tt.profile)
			if got := ids(status.Due); !slices.Equal(got, tt.due) {
				t.Errorf("Expected due %v, got %v", tt.due, got)
			}
			if len(status.Overdue) != tt.overdue {
				t.Errorf("Expected %d overdue, got %d", tt.overdue, len(status.Overdue))
			}
			if len(status.Upcoming) != tt.upcoming {
				t.Errorf("Expected %d upcoming, got %d", tt.upcoming, len(status.Upcoming))
			}
			stats := status.Statistics
			if stats.CompletionPercentage != tt.completion {
				t.Errorf("Expected completion %d, got %d", tt.completion, stats.CompletionPercentage)
			}
			if stats.TotalGiven != len(tt.records) || stats.DueNow != len(tt.due) || stats.Overdue != tt.overdue {
				t.Errorf("Expected statistics to match lists, got %+v", stats)
			}
		})
	}
}

func TestCompletionCountsOnlyApplicable(t *testing.T) {
	birth := given("bcg", "opv_0", "hep_b_0")
	if got := Completion(birth, Profile{AgeMonths: 0}); got != 100 {
		t.Errorf("Expected newborn with birth doses complete, got %d", got)
	}
	if got := Completion(nil, Profile{AgeMonths: 0}); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}

	cert := NewCertificate(types.NewID(), birth, Profile{AgeMonths: 0}, now)
	if cert.CompletionPercentage != 100 || len(cert.Records) != 3 || !cert.GeneratedAt.Equal(now) {
		t.Errorf("Expected complete certificate, got %+v", cert)
	}
}

// --- Record Tests ---

func TestNewRecord(t *testing.T) {
	patient := types.NewDeterministicID("patient", "p-1")
	yesterday := now.Add(-24 * time.Hour)
	notDone := false

	tests := []struct {
		name  string
		input RecordInput
		field string
		check func(t *testing.T, r *Record)
	}{
		{
			name:  "defaults",
			input: RecordInput{VaccineID: " bcg ", DateGiven: yesterday},
			check: func(t *testing.T, r *Record) {
				if r.VaccineName != "BCG" || r.DoseNumber != 1 || !r.IsCompleted {
					t.Errorf("Expected defaulted BCG record, got %+v", r)
				}
				if r.PatientID != patient || r.ID.IsZero() || !r.CreatedAt.Equal(now) {
					t.Errorf("Expected identity fields set, got %+v", r)
				}
			},
		},
		{
			name:  "explicit incomplete",
			input: RecordInput{VaccineID: "pcv_1", DateGiven: yesterday, DoseNumber: 2, IsCompleted: &notDone},
			check: func(t *testing.T, r *Record) {
				if r.DoseNumber != 2 || r.IsCompleted {
					t.Errorf("Expected dose 2 incomplete, got %+v", r)
				}
			},
		},
		{name: "unknown vaccine", input: RecordInput{VaccineID: "smallpox", DateGiven: yesterday}, field: "vaccine_id"},
		{name: "missing date", input: RecordInput{VaccineID: "bcg"}, field: "date_given"},
		{name: "future date", input: RecordInput{VaccineID: "bcg", DateGiven: now.Add(time.Hour)}, field: "date_given"},
		{name: "negative dose", input: RecordInput{VaccineID: "bcg", DateGiven: yesterday, DoseNumber: -1}, field: "dose_number"},
		{name: "next due before given", input: RecordInput{VaccineID: "bcg", DateGiven: yesterday, NextDueDate: &yesterday}, field: "next_due_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecord(patient, tt.input, now)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Expected record, got %v", err)
				}
				tt.check(t, r)
				return
			}
			appErr, ok := errors.As(err)
			if !ok {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if _, ok := appErr.Details[tt.field]; !ok {
				t.Errorf("Expected detail for %s, got %v", tt.field, appErr.Details)
			}
		})
	}
}

// --- Handler Tests ---

func newTestHandler(store Store, pub events.Publisher) *Handler {
	h := NewHandler(store, pub, zap.NewNop())
	h.now = func() time.Time { return now }
	return h
}

func TestHandlerRecords(t *testing.T) {
	store := &memoryStore{}
	pub := &memoryPublisher{}
	router := newTestHandler(store, pub).Routes()

	patient := types.NewDeterministicID("patient", "alice")
	user := &auth.User{ID: patient, UserType: auth.UserTypePatient}
	base := "/patients/" + patient.String()

	do := func(method, path, body string, u *auth.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if u != nil {
			req = req.WithContext(auth.WithUser(req.Context(), u))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, base+"/records", `{"vaccine_id":"bcg","date_given":"2026-05-01T00:00:00Z"}`, user)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created Record
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("Expected JSON, got %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Type != events.TypeVaccinationRecorded {
		t.Errorf("Expected vaccination event, got %+v", pub.events)
	}

	w = do(http.MethodGet, base+"/status?age_months=0", "", user)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var status Status
	json.NewDecoder(w.Body).Decode(&status)
	if status.Statistics.TotalGiven != 1 || len(status.Due) != 2 || status.Statistics.CompletionPercentage != 33 {
		t.Errorf("Expected one of three birth doses, got %+v", status.Statistics)
	}

	other := &auth.User{ID: types.NewDeterministicID("patient", "bob"), UserType: auth.UserTypePatient}
	if w := do(http.MethodGet, base+"/records", "", other); w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for another patient, got %d", w.Code)
	}

	if w := do(http.MethodDelete, base+"/records/"+created.ID.String(), "", user); w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
	}
	if w := do(http.MethodDelete, base+"/records/"+created.ID.String(), "", user); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on second delete, got %d", w.Code)
	}
}

func TestHandlerValidation(t *testing.T) {
	router := newTestHandler(&memoryStore{}, nil).Routes()
	patient := types.NewID().String()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"schedule", http.MethodGet, "/schedule", "", http.StatusOK},
		{"schedule by category", http.MethodGet, "/schedule?category=child", "", http.StatusOK},
		{"unknown category", http.MethodGet, "/schedule?category=elderly", "", http.StatusBadRequest},
		{"invalid patient", http.MethodGet, "/patients/alice/records", "", http.StatusBadRequest},
		{"missing age", http.MethodGet, "/patients/" + patient + "/status", "", http.StatusBadRequest},
		{"negative age", http.MethodGet, "/patients/" + patient + "/status?age_months=-1", "", http.StatusBadRequest},
		{"bad pregnant flag", http.MethodGet, "/patients/" + patient + "/status?age_months=300&pregnant=maybe", "", http.StatusBadRequest},
		{"certificate", http.MethodGet, "/patients/" + patient + "/certificate?age_months=12", "", http.StatusOK},
		{"malformed body", http.MethodPost, "/patients/" + patient + "/records", "{", http.StatusBadRequest},
		{"unknown vaccine", http.MethodPost, "/patients/" + patient + "/records", `{"vaccine_id":"x","date_given":"2026-05-01T00:00:00Z"}`, http.StatusBadRequest},
		{"invalid record ID", http.MethodDelete, "/patients/" + patient + "/records/r1", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandlerWithoutStoreServesScheduleOnly(t *testing.T) {
	router := newTestHandler(nil, nil).Routes()

	req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/patients/"+types.NewID().String()+"/records", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
