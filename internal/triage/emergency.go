package triage

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vitavoice/platform/internal/i18n"
	"github.com/vitavoice/platform/internal/knowledge"
	"go.uber.org/zap"
)

// DetectorOptions configures a Detector.
type DetectorOptions struct {
	// FallbackProtocol is selected when keywords match but none of them
	// implies a protocol. Empty means BREATHING_DIFFICULTY; FallbackNone
	// selects a generic emergency protocol instead.
	FallbackProtocol string

	// Keywords replaces the built-in keyword tables when set.
	Keywords map[i18n.Code][]Keyword

	Logger *zap.Logger
}

// Detector screens free text and structured symptoms for emergencies. It is
// immutable after construction and safe for concurrent use.
type Detector struct {
	kb        *knowledge.Base
	protocols []Protocol
	byKey     map[string]int
	general   Protocol
	fallback  string
	keywords  map[i18n.Code][]Keyword
	logger    *zap.Logger
}

// NewDetector creates a detector backed by kb, which is used to recognise
// localized and aliased symptom names.
func NewDetector(kb *knowledge.Base, opts DetectorOptions) (*Detector, error) {
	d := &Detector{
		kb:        kb,
		protocols: DefaultProtocols(),
		byKey:     make(map[string]int),
		general:   generalProtocol(),
		keywords:  opts.Keywords,
		logger:    opts.Logger,
	}
	if d.keywords == nil {
		d.keywords = DefaultKeywords()
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	for i, p := range d.protocols {
		d.byKey[p.Key] = i
	}

	d.fallback = strings.ToUpper(strings.TrimSpace(opts.FallbackProtocol))
	switch d.fallback {
	case "":
		d.fallback = ProtocolBreathingDifficulty
	case FallbackNone:
	default:
		if _, ok := d.byKey[d.fallback]; !ok {
			return nil, fmt.Errorf("unknown fallback protocol %q", opts.FallbackProtocol)
		}
	}

	for lang, kws := range d.keywords {
		for _, kw := range kws {
			if kw.Protocol == "" {
				continue
			}
			if _, ok := d.byKey[kw.Protocol]; !ok {
				return nil, fmt.Errorf("keyword %q (%s): unknown protocol %s", kw.Term, lang, kw.Protocol)
			}
		}
	}

	return d, nil
}

// Protocols returns the published emergency catalogue.
func (d *Detector) Protocols() []Protocol {
	return slices.Clone(d.protocols)
}

// Protocol returns the protocol with key.
func (d *Detector) Protocol(key string) (Protocol, bool) {
	key = strings.ToUpper(key)
	if key == ProtocolGeneral {
		return d.general, true
	}
	i, ok := d.byKey[key]
	if !ok {
		return Protocol{}, false
	}
	return d.protocols[i], true
}

// FallbackProtocol returns the configured fallback key.
func (d *Detector) FallbackProtocol() string {
	return d.fallback
}

// HasEmergencyKeywords reports whether text contains any emergency phrase.
// An empty lang is detected from the text.
func (d *Detector) HasEmergencyKeywords(text string, lang i18n.Code) bool {
	if lang == "" {
		lang = i18n.Detect(text)
	}
	return len(d.matchKeywords(i18n.Fold(text), lang)) > 0
}

// Detect screens symptoms and an optional free-text complaint. When lang is
// empty the language of userInput is detected from its script. A protocol
// chosen from keywords takes precedence over one implied by symptoms.
func (d *Detector) Detect(symptoms []Symptom, userInput string, lang i18n.Code) EmergencyCheck {
	var check EmergencyCheck

	if strings.TrimSpace(userInput) != "" {
		if lang == "" {
			lang = i18n.Detect(userInput)
		}
		check.Language = lang

		folded := i18n.Fold(userInput)
		matched := d.matchKeywords(folded, lang)
		if len(matched) > 0 {
			check.IsEmergency = true
			check.Trigger = TriggerKeyword
			for _, kw := range matched {
				check.MatchedKeywords = append(check.MatchedKeywords, kw.Term)
			}
			p, fallback := d.selectProtocol(matched, folded)
			check.Protocol = &p
			check.UsedFallback = fallback
			if fallback {
				d.logger.Warn("emergency keywords matched without a protocol, using fallback",
					zap.Strings("keywords", check.MatchedKeywords),
					zap.String("fallback", p.Key),
					zap.String("language", string(lang)),
				)
			}
		}
	}

	if p, ok := d.checkSymptoms(symptoms); ok {
		check.IsEmergency = true
		if check.Protocol == nil {
			check.Protocol = &p
			check.Trigger = TriggerSymptom
		}
	}

	return check
}

// matchKeywords collects keywords that occur in the folded text, trying
// lang, then the language of the text's own script, then English.
func (d *Detector) matchKeywords(folded string, lang i18n.Code) []Keyword {
	if folded == "" {
		return nil
	}

	codes := []i18n.Code{lang}
	for _, code := range []i18n.Code{i18n.Detect(folded), i18n.English} {
		if !slices.Contains(codes, code) {
			codes = append(codes, code)
		}
	}

	var matched []Keyword
	seen := make(map[string]bool)
	for _, code := range codes {
		for _, kw := range d.keywords[code] {
			term := i18n.Fold(kw.Term)
			if term == "" || seen[term] {
				continue
			}
			if strings.Contains(folded, term) {
				seen[term] = true
				matched = append(matched, kw)
			}
		}
	}
	return matched
}

func (d *Detector) selectProtocol(matched []Keyword, folded string) (Protocol, bool) {
	tagged := make(map[string]bool, len(matched))
	for _, kw := range matched {
		if kw.Protocol != "" {
			tagged[kw.Protocol] = true
		}
	}

	for _, key := range keywordPriority {
		if tagged[key] || containsAny(folded, contextPhrases[key]) {
			p, _ := d.Protocol(key)
			return p, false
		}
	}

	if d.fallback == FallbackNone {
		return d.general, true
	}
	p, _ := d.Protocol(d.fallback)
	return p, true
}

// checkSymptoms applies the severity rules. Names are matched both as
// reported and through their canonical catalogue names so that localized
// reports trigger the same rules.
func (d *Detector) checkSymptoms(symptoms []Symptom) (Protocol, bool) {
	severe := slices.ContainsFunc(symptoms, func(s Symptom) bool { return s.Severity >= 8 })

	if severe {
		var terms []string
		for _, s := range symptoms {
			terms = append(terms, d.symptomTerms(s)...)
		}
		switch {
		case slices.ContainsFunc(terms, func(t string) bool {
			return strings.Contains(t, "chest") && strings.Contains(t, "pain")
		}):
			return d.mustProtocol(ProtocolChestPain), true
		case slices.ContainsFunc(terms, func(t string) bool { return strings.Contains(t, "breath") }):
			return d.mustProtocol(ProtocolBreathingDifficulty), true
		case slices.ContainsFunc(terms, func(t string) bool { return strings.Contains(t, "bleed") }):
			return d.mustProtocol(ProtocolSevereBleeding), true
		}
	}

	for _, s := range symptoms {
		if s.Severity < 9 {
			continue
		}
		if slices.ContainsFunc(d.symptomTerms(s), func(t string) bool { return strings.Contains(t, "fever") }) {
			return d.mustProtocol(ProtocolHighFever), true
		}
	}

	return Protocol{}, false
}

// symptomTerms returns the folded reported name plus the canonical names of
// the symptoms it resolves to and their ancestors.
func (d *Detector) symptomTerms(s Symptom) []string {
	terms := []string{i18n.Fold(s.Name)}
	if d.kb == nil {
		return terms
	}
	for id := range d.kb.Expand(d.kb.Resolve(s.Name)) {
		if sym, ok := d.kb.Symptom(id); ok {
			terms = append(terms, i18n.Fold(sym.Name))
		}
	}
	return terms
}

func (d *Detector) mustProtocol(key string) Protocol {
	p, ok := d.Protocol(key)
	if !ok {
		panic("triage: missing protocol " + key)
	}
	return p
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, i18n.Fold(p)) {
			return true
		}
	}
	return false
}
