package knowledge

import (
	"encoding/json"
	"maps"
	"math"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/vitavoice/platform/internal/i18n"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// --- Catalogue Tests ---

func TestSeedIsValid(t *testing.T) {
	if _, err := FromCatalogue(Seed()); err != nil {
		t.Fatalf("Expected seed catalogue to validate, got %v", err)
	}
}

func TestDiseaseOrder(t *testing.T) {
	kb := New()
	expected := []DiseaseID{
		DisViralFever, DisDengue, DisMalaria, DisTyphoid, DisCommonCold,
		DisPneumonia, DisDiarrhea, DisDehydration, DisCovid19,
	}
	var got []DiseaseID
	for _, d := range kb.Diseases() {
		got = append(got, d.ID)
	}
	if !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestStats(t *testing.T) {
	st := New().Stats()

	if st.Symptoms != 32 {
		t.Errorf("Expected 32 symptoms, got %d", st.Symptoms)
	}
	if st.Diseases != 9 {
		t.Errorf("Expected 9 diseases, got %d", st.Diseases)
	}
	if st.Edges != 49 {
		t.Errorf("Expected 49 edges, got %d", st.Edges)
	}
	if st.EmergencyDiseases != 1 {
		t.Errorf("Expected 1 emergency disease, got %d", st.EmergencyDiseases)
	}
	if !slices.Contains(st.Languages, i18n.Tamil) || !slices.Contains(st.Languages, i18n.English) {
		t.Errorf("Expected languages to include en and ta, got %v", st.Languages)
	}
	if st.Aliases == 0 || len(st.Sources) == 0 {
		t.Errorf("Expected aliases and sources, got %d / %v", st.Aliases, st.Sources)
	}
}

// --- Resolution Tests ---

func TestResolve(t *testing.T) {
	kb := New()

	tests := []struct {
		name     string
		input    string
		expected []SymptomID
	}{
		{"canonical name", "fever", []SymptomID{SymFever}},
		{"case and spacing", "  Fever ", []SymptomID{SymFever}},
		{"alias", "high temperature", []SymptomID{SymFever}},
		{"specific symptom", "high fever", []SymptomID{SymHighFever}},
		{"hindi", "बुखार", []SymptomID{SymFever}},
		{"tamil", "தலைவலி", []SymptomID{SymHeadache}},
		{"cold alias", "cold", []SymptomID{SymRunnyNose}},
		{"phrase keeps most specific", "I have a bad headache and cough", []SymptomID{SymSevereHeadache, SymCough}},
		{"plural", "fevers", []SymptomID{SymFever}},
		{"name inside report", "chest pains", []SymptomID{SymChestPain}},
		{"report inside name", "throat", []SymptomID{SymSoreThroat}},
		{"too short to contain", "ach", nil},
		{"unknown", "itchy elbow", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kb.Resolve(tt.input)
			if len(got) != len(tt.expected) || (len(got) > 0 && !slices.Equal(got, tt.expected)) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestScan(t *testing.T) {
	kb := New()

	got := kb.Scan("Fever since two days, also vomiting and loose motions.")
	expected := []SymptomID{SymFever, SymVomiting, SymLooseStools}
	if !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	got = kb.Scan("மூச்சுத் திணறல்")
	if !slices.Equal(got, []SymptomID{SymBreathingDifficult}) {
		t.Errorf("Expected breathing difficulty, got %v", got)
	}
}

func TestExpand(t *testing.T) {
	kb := New()

	set := kb.Expand([]SymptomID{SymHighFever, SymCough})
	for _, id := range []SymptomID{SymHighFever, SymFever, SymCough} {
		if !set[id] {
			t.Errorf("Expected %s in expanded set", id)
		}
	}

	set = kb.Expand([]SymptomID{SymFever})
	if set[SymHighFever] {
		t.Error("Expected Expand to add ancestors only")
	}

	if got := kb.Ancestors(SymSevereHeadache); !slices.Equal(got, []SymptomID{SymHeadache}) {
		t.Errorf("Expected [%s], got %v", SymHeadache, got)
	}
}

func TestRelated(t *testing.T) {
	kb := New()

	expected := []SymptomID{SymHighFever, SymMildFever, SymProlongedFever}
	if got := kb.Descendants(SymFever); !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if got := kb.Descendants(SymCough); len(got) != 0 {
		t.Errorf("Expected no descendants for cough, got %v", got)
	}

	tests := []struct {
		name     string
		ids      []SymptomID
		expected Evidence
	}{
		{"general reaches specialisations", []SymptomID{SymFever},
			Evidence{SymFever: 1, SymHighFever: InferredWeight, SymMildFever: InferredWeight, SymProlongedFever: InferredWeight}},
		{"specific reaches ancestors only", []SymptomID{SymHighFever},
			Evidence{SymHighFever: 1, SymFever: 1}},
		{"reported beats inferred", []SymptomID{SymFever, SymHighFever},
			Evidence{SymFever: 1, SymHighFever: 1, SymMildFever: InferredWeight, SymProlongedFever: InferredWeight}},
		{"leaf", []SymptomID{SymCough}, Evidence{SymCough: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kb.Related(tt.ids); !maps.Equal(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestScore(t *testing.T) {
	kb := New()
	d, ok := kb.Disease(DisCommonCold)
	if !ok {
		t.Fatal("Expected common cold in catalogue")
	}

	matched, coverage, likelihood := d.Score(Evidence{SymCough: 1, SymHeadache: 1})
	if !slices.Equal(matched, []SymptomID{SymCough, SymHeadache}) {
		t.Errorf("Expected cough and headache, got %v", matched)
	}
	if !approx(coverage, 2.0/6.0) {
		t.Errorf("Expected coverage 1/3, got %f", coverage)
	}
	if !approx(likelihood, 1.15/4.0) {
		t.Errorf("Expected likelihood %f, got %f", 1.15/4.0, likelihood)
	}

	matched, coverage, _ = d.Score(nil)
	if len(matched) != 0 || coverage != 0 {
		t.Errorf("Expected no match, got %v / %f", matched, coverage)
	}

	dengue, _ := kb.Disease(DisDengue)
	matched, coverage, likelihood = dengue.Score(kb.Related([]SymptomID{SymFever}))
	if !slices.Equal(matched, []SymptomID{SymHighFever}) || !approx(coverage, 0.2) {
		t.Errorf("Expected high fever at 0.2 coverage, got %v / %f", matched, coverage)
	}
	if !approx(likelihood, 0.9*InferredWeight/3.6) {
		t.Errorf("Expected inferred likelihood %f, got %f", 0.9*InferredWeight/3.6, likelihood)
	}
}

// --- Lookup Tests ---

func TestDiseasesForSymptom(t *testing.T) {
	kb := New()

	assoc := kb.DiseasesForSymptom(SymHeadache)
	if len(assoc) != 5 {
		t.Fatalf("Expected 5 diseases for headache, got %d", len(assoc))
	}
	if assoc[0].DiseaseID != DisCovid19 {
		t.Errorf("Expected most probable disease %s, got %s", DisCovid19, assoc[0].DiseaseID)
	}
	// Equal probabilities keep catalogue order.
	if assoc[1].DiseaseID != DisViralFever || assoc[2].DiseaseID != DisMalaria {
		t.Errorf("Expected viral fever then malaria, got %s then %s", assoc[1].DiseaseID, assoc[2].DiseaseID)
	}
	for i := 1; i < len(assoc); i++ {
		if assoc[i].Probability > assoc[i-1].Probability {
			t.Errorf("Expected descending probabilities, got %v", assoc)
		}
	}

	if got := kb.DiseasesForSymptom("sym_unknown"); len(got) != 0 {
		t.Errorf("Expected no diseases, got %v", got)
	}
}

func TestSymptomsForDisease(t *testing.T) {
	kb := New()

	assoc := kb.SymptomsForDisease(DisCovid19)
	if len(assoc) != 7 {
		t.Fatalf("Expected 7 symptoms, got %d", len(assoc))
	}
	if assoc[0].SymptomName != "fever" || assoc[0].Probability != 0.88 {
		t.Errorf("Expected fever at 0.88, got %s at %f", assoc[0].SymptomName, assoc[0].Probability)
	}
	if kb.SymptomsForDisease("dis_unknown") != nil {
		t.Error("Expected nil for unknown disease")
	}
}

func TestIsEmergencyCondition(t *testing.T) {
	kb := New()

	if !kb.IsEmergencyCondition(DisCovid19) {
		t.Error("Expected COVID-19 to be flagged")
	}
	if kb.IsEmergencyCondition(DisCommonCold) {
		t.Error("Expected common cold not to be flagged")
	}
	if kb.IsEmergencyCondition("dis_unknown") {
		t.Error("Expected unknown disease not to be flagged")
	}
}

func TestLocalizedName(t *testing.T) {
	kb := New()

	tests := []struct {
		id       string
		lang     i18n.Code
		expected string
		found    bool
	}{
		{string(SymFever), i18n.Tamil, "காய்ச்சல்", true},
		{string(SymFever), i18n.Hindi, "बुखार", true},
		{string(SymSneezing), i18n.Tamil, "sneezing", true},
		{string(DisDengue), i18n.Hindi, "Dengue (Suspected)", true},
		{"sym_unknown", i18n.English, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.id+"/"+string(tt.lang), func(t *testing.T) {
			got, ok := kb.LocalizedName(tt.id, tt.lang)
			if ok != tt.found || got != tt.expected {
				t.Errorf("Expected %q (%v), got %q (%v)", tt.expected, tt.found, got, ok)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	kb := New()

	results := kb.Search("fever", "")
	if len(results) != 5 {
		t.Fatalf("Expected 5 results, got %d: %v", len(results), results)
	}
	if results[0].ID != string(SymFever) || results[0].Type != EntitySymptom {
		t.Errorf("Expected fever symptom first, got %+v", results[0])
	}
	if last := results[len(results)-1]; last.ID != string(DisViralFever) || last.Type != EntityDisease {
		t.Errorf("Expected viral fever disease last, got %+v", last)
	}

	results = kb.Search("influenza", "")
	if len(results) != 1 || results[0].ID != string(DisCommonCold) {
		t.Errorf("Expected common cold, got %v", results)
	}

	results = kb.Search("காய்ச்சல்", i18n.Tamil)
	if len(results) != 1 || results[0].LocalizedName != "காய்ச்சல்" {
		t.Errorf("Expected tamil fever, got %v", results)
	}

	if results := kb.Search("காய்ச்சல்", i18n.Hindi); len(results) != 0 {
		t.Errorf("Expected no hindi match for tamil term, got %v", results)
	}
	if results := kb.Search("  ", ""); results != nil {
		t.Errorf("Expected nil for blank query, got %v", results)
	}
}

// --- Loading Tests ---

func TestLoad(t *testing.T) {
	doc := `{
		"symptoms": [{"id": "s1", "name": "itch", "aliases": ["itching"]}],
		"diseases": [{"id": "d1", "name": "Scabies", "severity": "LOW", "edges": [{"symptom_id": "s1", "probability": 0.9}]}]
	}`

	kb, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Expected catalogue to load, got %v", err)
	}
	d, _ := kb.Disease("d1")
	if d.Family != FamilyOther {
		t.Errorf("Expected default family OTHER, got %s", d.Family)
	}
	if d.Source != curated.Source {
		t.Errorf("Expected default provenance, got %q", d.Source)
	}
	if got := kb.Resolve("Itching"); !slices.Equal(got, []SymptomID{"s1"}) {
		t.Errorf("Expected s1, got %v", got)
	}
}

func TestLoadRejectsInvalidCatalogues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{`},
		{"unknown symptom", `{"symptoms":[{"id":"s1","name":"a"}],"diseases":[{"id":"d1","name":"D","severity":"LOW","edges":[{"symptom_id":"s2","probability":0.5}]}]}`},
		{"parent cycle", `{"symptoms":[{"id":"s1","name":"a","parent":"s2"},{"id":"s2","name":"b","parent":"s1"}]}`},
		{"unknown parent", `{"symptoms":[{"id":"s1","name":"a","parent":"s9"}]}`},
		{"shared alias", `{"symptoms":[{"id":"s1","name":"a","aliases":["x"]},{"id":"s2","name":"b","aliases":["X"]}]}`},
		{"duplicate symptom", `{"symptoms":[{"id":"s1","name":"a"},{"id":"s1","name":"b"}]}`},
		{"bad probability", `{"symptoms":[{"id":"s1","name":"a"}],"diseases":[{"id":"d1","name":"D","severity":"LOW","edges":[{"symptom_id":"s1","probability":1.5}]}]}`},
		{"bad severity", `{"symptoms":[{"id":"s1","name":"a"}],"diseases":[{"id":"d1","name":"D","severity":"CRITICAL","edges":[{"symptom_id":"s1","probability":0.5}]}]}`},
		{"no edges", `{"symptoms":[{"id":"s1","name":"a"}],"diseases":[{"id":"d1","name":"D","severity":"LOW"}]}`},
		{"duplicate edge", `{"symptoms":[{"id":"s1","name":"a"}],"diseases":[{"id":"d1","name":"D","severity":"LOW","edges":[{"symptom_id":"s1","probability":0.5},{"symptom_id":"s1","probability":0.6}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.doc)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(t.TempDir() + "/missing.json"); err == nil {
		t.Error("Expected error for missing file")
	}
}

// --- Handler Tests ---

func TestHandler(t *testing.T) {
	router := NewHandler(New()).Routes()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"get symptom", http.MethodGet, "/symptoms/sym_fever", "", http.StatusOK},
		{"unknown symptom", http.MethodGet, "/symptoms/sym_nope", "", http.StatusNotFound},
		{"symptom diseases", http.MethodGet, "/symptoms/sym_cough/diseases", "", http.StatusOK},
		{"get disease", http.MethodGet, "/diseases/dis_dengue", "", http.StatusOK},
		{"unknown disease symptoms", http.MethodGet, "/diseases/dis_nope/symptoms", "", http.StatusNotFound},
		{"search", http.MethodGet, "/search?q=cough&lang=hi", "", http.StatusOK},
		{"search without query", http.MethodGet, "/search", "", http.StatusBadRequest},
		{"search bad language", http.MethodGet, "/search?q=cough&lang=xx", "", http.StatusBadRequest},
		{"stats", http.MethodGet, "/stats", "", http.StatusOK},
		{"resolve", http.MethodPost, "/resolve", `{"names":["high fever"],"text":"cough and cold"}`, http.StatusOK},
		{"resolve empty", http.MethodPost, "/resolve", `{}`, http.StatusBadRequest},
		{"resolve malformed", http.MethodPost, "/resolve", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandlerResolveBody(t *testing.T) {
	router := NewHandler(New()).Routes()

	req := httptest.NewRequest(http.MethodPost, "/resolve", strings.NewReader(`{"names":["high fever"],"text":"cough and cold"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp struct {
		Names []resolvedName `json:"names"`
		Text  []SymptomID    `json:"text"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if len(resp.Names) != 1 || !slices.Equal(resp.Names[0].Symptoms, []SymptomID{SymHighFever}) {
		t.Errorf("Expected high fever, got %+v", resp.Names)
	}
	if !slices.Equal(resp.Text, []SymptomID{SymRunnyNose, SymCough}) {
		t.Errorf("Expected runny nose and cough, got %v", resp.Text)
	}
}
