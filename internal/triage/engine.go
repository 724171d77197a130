package triage

import (
	"cmp"
	"slices"
	"time"

	"github.com/vitavoice/platform/internal/knowledge"
	"github.com/vitavoice/platform/internal/shared/types"
)

// MinMatchConfidence is the smallest share of a disease's symptoms that must
// be reported for it to be listed.
const MinMatchConfidence = 0.3

// Engine analyses assessments against the knowledge base. It keeps no state
// between calls.
type Engine struct {
	kb       *knowledge.Base
	detector *Detector
	now      func() time.Time
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithClock sets the time source used to stamp results.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine. The detector runs before any matching.
func NewEngine(kb *knowledge.Base, detector *Detector, opts ...EngineOption) *Engine {
	e := &Engine{
		kb:       kb,
		detector: detector,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Detector returns the emergency detector the engine screens with.
func (e *Engine) Detector() *Detector {
	return e.detector
}

// Analyze produces exactly one result per assessment. It never fails: with
// nothing to match the result has no conditions, LOW confidence and generic
// advice.
func (e *Engine) Analyze(a Assessment) DiagnosticResult {
	now := e.now()
	if a.Timestamp.IsZero() {
		a.Timestamp = now
	}

	check := e.detector.Detect(a.Symptoms, a.MainComplaint, a.Language)
	if check.IsEmergency {
		return e.emergencyResult(a, check, now)
	}

	matches := e.MatchDiseases(a.Symptoms)
	return DiagnosticResult{
		ID:                 types.NewID(),
		Assessment:         a,
		PossibleConditions: matches,
		Recommendation:     Recommend(matches, a),
		Confidence:         overallConfidence(matches, len(a.Symptoms)),
		IsEmergency:        false,
		Timestamp:          now,
	}
}

// MatchDiseases ranks catalogue diseases against reported symptoms. Reported
// names are resolved to canonical symptoms, and a symptom counts for both its
// general ancestors and its specialisations, so "fever" meets a "high fever"
// edge. Matches are ordered by confidence, then likelihood, then catalogue
// order.
func (e *Engine) MatchDiseases(symptoms []Symptom) []DiseaseMatch {
	matches := []DiseaseMatch{}

	var ids []knowledge.SymptomID
	for _, s := range symptoms {
		ids = append(ids, e.kb.Resolve(s.Name)...)
	}
	if len(ids) == 0 {
		return matches
	}
	present := e.kb.Related(ids)

	for _, d := range e.kb.Diseases() {
		matched, confidence, likelihood := d.Score(present)
		if confidence < MinMatchConfidence {
			continue
		}
		names := make([]string, 0, len(matched))
		for _, id := range matched {
			if s, ok := e.kb.Symptom(id); ok {
				names = append(names, s.Name)
			}
		}
		matches = append(matches, DiseaseMatch{
			DiseaseID:       d.ID,
			DiseaseName:     d.Name,
			MatchedSymptoms: names,
			Confidence:      confidence,
			Likelihood:      likelihood,
			Severity:        d.Severity,
			Description:     "Duration: " + d.Duration,
			Family:          d.Family,
		})
	}

	slices.SortStableFunc(matches, func(a, b DiseaseMatch) int {
		if c := cmp.Compare(b.Confidence, a.Confidence); c != 0 {
			return c
		}
		return cmp.Compare(b.Likelihood, a.Likelihood)
	})
	return matches
}

func (e *Engine) emergencyResult(a Assessment, check EmergencyCheck, now time.Time) DiagnosticResult {
	p := check.Protocol
	names := make([]string, 0, len(a.Symptoms))
	for _, s := range a.Symptoms {
		names = append(names, s.Name)
	}

	return DiagnosticResult{
		ID:         types.NewID(),
		Assessment: a,
		PossibleConditions: []DiseaseMatch{{
			DiseaseName:     p.Condition,
			MatchedSymptoms: names,
			Confidence:      1.0,
			Likelihood:      1.0,
			Severity:        SeverityHigh,
			Description:     "Emergency condition detected",
		}},
		Recommendation: HealthRecommendation{
			Category:              RiskEmergency,
			Advice:                []string{p.WarningMessage},
			EmergencyInstructions: slices.Clone(p.ImmediateActions),
			FollowUpTiming:        FollowUpImmediately,
		},
		Confidence:        ConfidenceHigh,
		IsEmergency:       true,
		EmergencyProtocol: p,
		MatchedKeywords:   check.MatchedKeywords,
		EmergencyTrigger:  check.Trigger,
		UsedFallback:      check.UsedFallback,
		Timestamp:         now,
	}
}

func overallConfidence(matches []DiseaseMatch, symptomCount int) ConfidenceLevel {
	if len(matches) == 0 {
		return ConfidenceLow
	}
	top := matches[0].Confidence
	switch {
	case top >= 0.7 && symptomCount >= 3:
		return ConfidenceHigh
	case top >= 0.5 || symptomCount >= 2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
