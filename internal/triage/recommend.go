package triage

import (
	"slices"

	"github.com/vitavoice/platform/internal/knowledge"
)

// Follow-up timings.
const (
	FollowUpImmediately = "Immediately"
	FollowUpWithin24h   = "Within 24 hours"
	FollowUpRoutine     = "24-48 hours"
)

// careTemplate is the advice attached to a condition family.
type careTemplate struct {
	advice     []string
	homeCare   []string
	warnings   []string
	medication []string
	dietary    []string
}

var familyTemplates = map[knowledge.Family]careTemplate{
	knowledge.FamilyFever: {
		homeCare: []string{
			"Take paracetamol for fever (500mg every 6 hours if needed)",
			"Use cool compresses on forehead",
			"Wear light, breathable clothing",
		},
		dietary: []string{
			"Consume light, easily digestible foods",
			"Drink ORS (Oral Rehydration Solution) if sweating",
		},
		warnings: []string{
			"Fever above 103°F (39.5°C)",
			"Fever lasting more than 3 days",
		},
	},
	knowledge.FamilyVectorBorne: {
		advice: []string{
			"Get blood test done immediately",
			"Visit doctor for proper diagnosis",
		},
		warnings: []string{
			"Severe headache or pain behind eyes",
			"Bleeding from nose or gums",
			"Severe abdominal pain",
		},
		dietary: []string{
			"Drink papaya leaf juice (for dengue)",
			"Eat iron-rich foods",
		},
	},
	knowledge.FamilyRespiratoryViral: {
		homeCare: []string{
			"Gargle with warm salt water",
			"Steam inhalation 2-3 times daily",
			"Use saline nasal drops",
		},
		dietary: []string{
			"Drink warm liquids (ginger tea, turmeric milk)",
			"Consume vitamin C rich foods (citrus fruits)",
		},
		medication: []string{
			"Paracetamol for fever and body ache",
		},
	},
	knowledge.FamilyGastroIntestinal: {
		homeCare: []string{
			"Drink ORS frequently to prevent dehydration",
			"Maintain hand hygiene",
		},
		dietary: []string{
			"Eat BRAT diet (Banana, Rice, Applesauce, Toast)",
			"Avoid dairy products temporarily",
			"Drink coconut water",
		},
		warnings: []string{
			"Blood in stools",
			"Severe dehydration (dark urine, dizziness)",
			"Diarrhea lasting more than 2 days",
		},
	},
	knowledge.FamilyPneumonia: {
		advice: []string{
			"Visit doctor immediately for antibiotics",
			"Get chest X-ray if recommended",
		},
		warnings: []string{
			"Difficulty breathing",
			"Chest pain when breathing",
			"Bluish lips or fingernails",
		},
	},
}

// Recommend builds care advice from ranked matches. Templates are chosen
// once from the top match's family; age and pregnancy add their own advice.
func Recommend(matches []DiseaseMatch, a Assessment) HealthRecommendation {
	var top *DiseaseMatch
	if len(matches) > 0 {
		top = &matches[0]
	}

	category := categorize(a.MaxSeverity(), top)
	rec := HealthRecommendation{
		Category: category,
		Advice:   []string{"Monitor your symptoms closely"},
		HomeCareTips: []string{
			"Get adequate rest (7-8 hours of sleep)",
			"Drink plenty of water (8-10 glasses per day)",
		},
		FollowUpTiming: followUpFor(category),
	}

	if top != nil {
		t := familyTemplates[top.Family]
		rec.Advice = append(rec.Advice, t.advice...)
		rec.HomeCareTips = append(rec.HomeCareTips, t.homeCare...)
		rec.WarningSigns = append(rec.WarningSigns, t.warnings...)
		rec.MedicationSuggestions = append(rec.MedicationSuggestions, t.medication...)
		rec.DietarySuggestions = append(rec.DietarySuggestions, t.dietary...)
	}

	switch age := a.PatientInfo.Age; {
	case age < 5:
		rec.Advice = append(rec.Advice, "Children under 5 need special care - consult pediatrician")
		rec.WarningSigns = append(rec.WarningSigns, "Refusal to eat or drink", "Excessive crying or irritability")
	case age > 60:
		rec.Advice = append(rec.Advice, "Elderly patients should seek medical care earlier")
		rec.WarningSigns = append(rec.WarningSigns, "Confusion or disorientation", "Weakness or difficulty walking")
	}

	if a.PatientInfo.IsPregnant {
		rec.Advice = append(rec.Advice,
			"Pregnant women should consult doctor for any medication",
			"Do not take any medicine without doctor approval",
		)
		rec.WarningSigns = append(rec.WarningSigns,
			"Any vaginal bleeding",
			"Severe abdominal pain",
			"Reduced fetal movement",
		)
	}

	return rec
}

func categorize(maxSeverity int, top *DiseaseMatch) RiskCategory {
	var severity Severity
	if top != nil {
		severity = top.Severity
	}
	switch {
	case maxSeverity >= 7 || severity == SeverityHigh:
		return RiskEmergency
	case maxSeverity >= 4 || severity == SeverityMedium:
		return RiskVisitPHC
	default:
		return RiskSafeHomeCare
	}
}

func followUpFor(category RiskCategory) string {
	switch category {
	case RiskEmergency:
		return FollowUpImmediately
	case RiskVisitPHC:
		return FollowUpWithin24h
	default:
		return FollowUpRoutine
	}
}

// SeverityLevel grades a 1-10 symptom score.
func SeverityLevel(score int) Severity {
	switch {
	case score >= 7:
		return SeverityHigh
	case score >= 4:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// RiskInfo describes a risk category for display.
type RiskInfo struct {
	Category    RiskCategory `json:"category"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
}

var riskCategories = []RiskInfo{
	{RiskSafeHomeCare, "Safe Home Care", "Can be managed at home with rest and basic care"},
	{RiskVisitPHC, "Visit Health Center", "Should visit Primary Health Center within 24-48 hours"},
	{RiskEmergency, "Emergency", "Seek immediate medical attention - Call 108"},
}

// RiskCategories lists every risk category, mildest first.
func RiskCategories() []RiskInfo {
	return slices.Clone(riskCategories)
}

// RiskCategoryInfo returns the display information for category.
func RiskCategoryInfo(category RiskCategory) (RiskInfo, bool) {
	for _, info := range riskCategories {
		if info.Category == category {
			return info, true
		}
	}
	return RiskInfo{}, false
}

// ConfidenceBand is the score range a confidence level stands for.
type ConfidenceBand struct {
	Level ConfidenceLevel `json:"level"`
	Min   float64         `json:"min"`
	Max   float64         `json:"max"`
	Label string          `json:"label"`
}

// ConfidenceRange returns the score band of level.
func ConfidenceRange(level ConfidenceLevel) (ConfidenceBand, bool) {
	switch level {
	case ConfidenceHigh:
		return ConfidenceBand{level, 0.8, 1.0, "High Confidence"}, true
	case ConfidenceMedium:
		return ConfidenceBand{level, 0.5, 0.79, "Medium Confidence"}, true
	case ConfidenceLow:
		return ConfidenceBand{level, 0, 0.49, "Low Confidence"}, true
	}
	return ConfidenceBand{}, false
}
