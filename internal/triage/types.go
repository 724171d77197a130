// Package triage turns reported symptoms into a diagnostic result: it screens
// for emergencies first, then ranks candidate conditions from the knowledge
// base and assembles care advice for the patient.
package triage

import (
	"time"

	"github.com/vitavoice/platform/internal/i18n"
	"github.com/vitavoice/platform/internal/knowledge"
	"github.com/vitavoice/platform/internal/shared/types"
)

// Severity reuses the catalogue grading.
type Severity = knowledge.Severity

const (
	SeverityLow    = knowledge.SeverityLow
	SeverityMedium = knowledge.SeverityMedium
	SeverityHigh   = knowledge.SeverityHigh
)

// RiskCategory is the care tier a result lands in.
type RiskCategory string

const (
	RiskSafeHomeCare RiskCategory = "SAFE_HOME_CARE"
	RiskVisitPHC     RiskCategory = "VISIT_PHC"
	RiskEmergency    RiskCategory = "EMERGENCY"
)

// ConfidenceLevel grades the overall certainty of a result.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "LOW"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceHigh   ConfidenceLevel = "HIGH"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Symptom is one reported complaint. Severity is on a 1-10 scale.
type Symptom struct {
	ID          types.ID `json:"id"`
	Name        string   `json:"name"`
	Severity    int      `json:"severity"`
	Duration    string   `json:"duration"`
	BodyPart    string   `json:"body_part,omitempty"`
	Description string   `json:"description,omitempty"`
}

type PatientInfo struct {
	Age                int      `json:"age"`
	Gender             Gender   `json:"gender"`
	IsPregnant         bool     `json:"is_pregnant,omitempty"`
	ChronicConditions  []string `json:"chronic_conditions"`
	Allergies          []string `json:"allergies"`
	CurrentMedications []string `json:"current_medications"`
}

// Assessment is the unit of work for the engine. Language is optional; when
// empty it is detected from MainComplaint.
type Assessment struct {
	Symptoms      []Symptom   `json:"symptoms"`
	PatientInfo   PatientInfo `json:"patient_info"`
	Timestamp     time.Time   `json:"timestamp"`
	MainComplaint string      `json:"main_complaint"`
	Language      i18n.Code   `json:"language,omitempty"`
}

// MaxSeverity returns the highest reported severity, or 0 with no symptoms.
func (a Assessment) MaxSeverity() int {
	highest := 0
	for _, s := range a.Symptoms {
		highest = max(highest, s.Severity)
	}
	return highest
}

// DiseaseMatch is a ranked candidate condition. Confidence is the share of
// the disease's symptoms that were reported; Likelihood weighs them by edge
// probability.
type DiseaseMatch struct {
	DiseaseID       knowledge.DiseaseID `json:"disease_id,omitempty"`
	DiseaseName     string              `json:"disease_name"`
	MatchedSymptoms []string            `json:"matched_symptoms"`
	Confidence      float64             `json:"confidence"`
	Likelihood      float64             `json:"likelihood"`
	Severity        Severity            `json:"severity"`
	Description     string              `json:"description"`
	Family          knowledge.Family    `json:"family,omitempty"`
}

type HealthRecommendation struct {
	Category              RiskCategory `json:"category"`
	Advice                []string     `json:"advice"`
	HomeCareTips          []string     `json:"home_care_tips,omitempty"`
	WarningSigns          []string     `json:"warning_signs,omitempty"`
	MedicationSuggestions []string     `json:"medication_suggestions,omitempty"`
	DietarySuggestions    []string     `json:"dietary_suggestions,omitempty"`
	FollowUpTiming        string       `json:"follow_up_timing"`
	EmergencyInstructions []string     `json:"emergency_instructions,omitempty"`
}

type DiagnosticResult struct {
	ID                 types.ID             `json:"id"`
	Assessment         Assessment           `json:"assessment"`
	PossibleConditions []DiseaseMatch       `json:"possible_conditions"`
	Recommendation     HealthRecommendation `json:"recommendation"`
	Confidence         ConfidenceLevel      `json:"confidence"`
	IsEmergency        bool                 `json:"is_emergency"`
	EmergencyProtocol  *Protocol            `json:"emergency_protocol,omitempty"`
	MatchedKeywords    []string             `json:"matched_keywords,omitempty"`
	EmergencyTrigger   Trigger              `json:"emergency_trigger,omitempty"`
	UsedFallback       bool                 `json:"used_fallback,omitempty"`
	Timestamp          time.Time            `json:"timestamp"`
}

// Protocol is a first-response instruction set for an emergency.
type Protocol struct {
	Key              string   `json:"key"`
	Condition        string   `json:"condition"`
	ImmediateActions []string `json:"immediate_actions"`
	CallAmbulance    bool     `json:"call_ambulance"`
	FirstAidSteps    []string `json:"first_aid_steps,omitempty"`
	WarningMessage   string   `json:"warning_message"`
}

// Trigger names the path that flagged an emergency.
type Trigger string

const (
	TriggerKeyword Trigger = "keyword"
	TriggerSymptom Trigger = "symptom"
)

// EmergencyCheck is the outcome of screening one input.
type EmergencyCheck struct {
	IsEmergency     bool      `json:"is_emergency"`
	Protocol        *Protocol `json:"protocol,omitempty"`
	MatchedKeywords []string  `json:"matched_keywords,omitempty"`
	Language        i18n.Code `json:"language,omitempty"`
	Trigger         Trigger   `json:"trigger,omitempty"`
	UsedFallback    bool      `json:"used_fallback,omitempty"`
}
