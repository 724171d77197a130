// Package history stores diagnostic results per patient so that doctors and
// patients can look back at earlier checks.
package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vitavoice/platform/internal/i18n"
	"github.com/vitavoice/platform/internal/shared/types"
	"github.com/vitavoice/platform/internal/triage"
)

// EntryType classifies how a result was produced.
type EntryType string

const (
	EntrySymptomCheck EntryType = "symptom_check"
	EntryEmergency    EntryType = "emergency"
	EntryConsultation EntryType = "consultation"
)

func (t EntryType) valid() bool {
	return t == EntrySymptomCheck || t == EntryEmergency || t == EntryConsultation
}

// Entry is one stored diagnostic result
type Entry struct {
	ID          types.ID               `json:"id"`
	PatientID   types.ID               `json:"patient_id"`
	Type        EntryType              `json:"type"`
	Summary     string                 `json:"summary"`
	Diagnosis   string                 `json:"diagnosis,omitempty"`
	Category    triage.RiskCategory    `json:"category"`
	Confidence  triage.ConfidenceLevel `json:"confidence"`
	IsEmergency bool                   `json:"is_emergency"`
	Protocol    string                 `json:"protocol,omitempty"`
	Language    i18n.Code              `json:"language,omitempty"`

	// Result is the full diagnostic result as returned to the patient.
	Result json.RawMessage `json:"result"`

	CreatedAt time.Time `json:"created_at"`
}

// NewEntry builds a history entry for result. The entry ID is derived from
// the result ID, so recording the same result twice yields one row.
func NewEntry(patientID types.ID, result triage.DiagnosticResult) (*Entry, error) {
	if patientID.IsZero() {
		return nil, fmt.Errorf("patient ID is required")
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	entry := &Entry{
		ID:          types.NewDeterministicID("history", result.ID.String()),
		PatientID:   patientID,
		Type:        EntrySymptomCheck,
		Summary:     summarize(result.Assessment),
		Category:    result.Recommendation.Category,
		Confidence:  result.Confidence,
		IsEmergency: result.IsEmergency,
		Language:    result.Assessment.Language,
		Result:      raw,
		CreatedAt:   result.Timestamp,
	}
	if len(result.PossibleConditions) > 0 {
		entry.Diagnosis = result.PossibleConditions[0].DiseaseName
	}
	if result.IsEmergency {
		entry.Type = EntryEmergency
		if result.EmergencyProtocol != nil {
			entry.Protocol = result.EmergencyProtocol.Key
		}
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	return entry, nil
}

// summarize prefers the patient's own words, then the reported symptoms.
func summarize(a triage.Assessment) string {
	if complaint := strings.TrimSpace(a.MainComplaint); complaint != "" {
		return complaint
	}
	names := make([]string, 0, len(a.Symptoms))
	for _, s := range a.Symptoms {
		names = append(names, s.Name)
	}
	if len(names) == 0 {
		return "No symptoms reported"
	}
	return strings.Join(names, ", ")
}

// ListFilter narrows history listings
type ListFilter struct {
	PatientID     *types.ID
	Type          *EntryType
	EmergencyOnly bool
	Limit         int
	Offset        int
}
