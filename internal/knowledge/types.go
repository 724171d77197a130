// Package knowledge holds the medical catalogue: canonical symptoms, the
// diseases they point to with weighted edges, and the alias index that maps
// free-text and localized symptom names onto canonical IDs.
package knowledge

import "github.com/vitavoice/platform/internal/i18n"

// SymptomID is a stable symptom identifier such as "sym_fever".
type SymptomID string

// DiseaseID is a stable disease identifier such as "dis_dengue".
type DiseaseID string

// Severity grades how urgent a condition is.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

func (s Severity) valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// Family groups diseases that share care advice.
type Family string

const (
	FamilyFever            Family = "FEVER"
	FamilyVectorBorne      Family = "VECTOR_BORNE"
	FamilyRespiratoryViral Family = "RESPIRATORY_VIRAL"
	FamilyGastroIntestinal Family = "GASTRO_INTESTINAL"
	FamilyPneumonia        Family = "PNEUMONIA"
	FamilyOther            Family = "OTHER"
)

func (f Family) valid() bool {
	switch f {
	case FamilyFever, FamilyVectorBorne, FamilyRespiratoryViral, FamilyGastroIntestinal, FamilyPneumonia, FamilyOther:
		return true
	}
	return false
}

// Provenance records where a catalogue entry came from.
type Provenance struct {
	Source     string  `json:"source"`
	Licence    string  `json:"licence"`
	Confidence float64 `json:"confidence"`
}

// Symptom is a canonical symptom. A symptom with a Parent is a more specific
// form of it; reporting the child also counts as reporting the parent.
type Symptom struct {
	ID        SymptomID            `json:"id"`
	Name      string               `json:"name"`
	Parent    SymptomID            `json:"parent,omitempty"`
	Aliases   []string             `json:"aliases,omitempty"`
	Languages map[i18n.Code]string `json:"languages,omitempty"`
	SnomedID  string               `json:"snomed_id,omitempty"`
	Provenance
}

// Edge links a disease to one of its symptoms. Probability is P(symptom | disease).
type Edge struct {
	SymptomID   SymptomID `json:"symptom_id"`
	Probability float64   `json:"probability"`
	Confidence  float64   `json:"confidence"`
}

type Disease struct {
	ID                DiseaseID            `json:"id"`
	Name              string               `json:"name"`
	Aliases           []string             `json:"aliases,omitempty"`
	Languages         map[i18n.Code]string `json:"languages,omitempty"`
	Description       string               `json:"description"`
	Severity          Severity             `json:"severity"`
	Duration          string               `json:"duration"`
	Family            Family               `json:"family"`
	SnomedID          string               `json:"snomed_id,omitempty"`
	DiseaseOntologyID string               `json:"disease_ontology_id,omitempty"`
	Emergency         bool                 `json:"emergency,omitempty"`
	Edges             []Edge               `json:"edges"`
	Provenance
}

// Catalogue is the serialised form of a knowledge base.
type Catalogue struct {
	Symptoms []Symptom `json:"symptoms"`
	Diseases []Disease `json:"diseases"`
}

// EntityType distinguishes search results.
type EntityType string

const (
	EntitySymptom EntityType = "symptom"
	EntityDisease EntityType = "disease"
)

// Entity is a search hit.
type Entity struct {
	ID            string     `json:"id"`
	Type          EntityType `json:"type"`
	Name          string     `json:"name"`
	LocalizedName string     `json:"localized_name"`
}

// Association is one symptom/disease edge viewed from either end.
type Association struct {
	SymptomID   SymptomID `json:"symptom_id"`
	SymptomName string    `json:"symptom_name"`
	DiseaseID   DiseaseID `json:"disease_id"`
	DiseaseName string    `json:"disease_name"`
	Probability float64   `json:"probability"`
	Confidence  float64   `json:"confidence"`
}

// Stats summarises the catalogue.
type Stats struct {
	Symptoms          int         `json:"symptoms"`
	Diseases          int         `json:"diseases"`
	Edges             int         `json:"edges"`
	Aliases           int         `json:"aliases"`
	EmergencyDiseases int         `json:"emergency_diseases"`
	Languages         []i18n.Code `json:"languages"`
	Sources           []string    `json:"sources"`
}
