package knowledge

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/vitavoice/platform/internal/i18n"
)

// minContainment is the shortest term, in runes, that may match by plain
// substring containment.
const minContainment = 4

// Resolve maps a reported symptom name to canonical symptom IDs. An exact
// name, alias or localized term wins; otherwise every known term appearing
// as a whole-word phrase in name counts. Failing both, a term containing
// the name or contained in it matches ("fevers", "chest pains", "throat").
// When both a symptom and one of its specialisations are found only the
// specialisation is kept.
func (b *Base) Resolve(name string) []SymptomID {
	folded := i18n.Fold(name)
	if id, ok := b.aliases[folded]; ok {
		return []SymptomID{id}
	}
	if ids := b.Scan(name); len(ids) > 0 {
		return ids
	}
	return b.contained(folded)
}

func (b *Base) contained(folded string) []SymptomID {
	if utf8.RuneCountInString(folded) < minContainment {
		return nil
	}
	hits := make(map[SymptomID]bool)
	for term, id := range b.aliases {
		if utf8.RuneCountInString(term) < minContainment {
			continue
		}
		if strings.Contains(folded, term) || strings.Contains(term, folded) {
			hits[id] = true
		}
	}
	return b.mostSpecific(hits)
}

// Scan finds every symptom mentioned in free text.
func (b *Base) Scan(text string) []SymptomID {
	tokens := i18n.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	hits := make(map[SymptomID]bool)
	for _, p := range b.phrases {
		if !hits[p.id] && containsRun(tokens, p.tokens) {
			hits[p.id] = true
		}
	}

	return b.mostSpecific(hits)
}

// mostSpecific drops general symptoms already implied by a more specific hit
// and returns the rest in catalogue order.
func (b *Base) mostSpecific(hits map[SymptomID]bool) []SymptomID {
	if len(hits) == 0 {
		return nil
	}
	for id := range hits {
		for _, ancestor := range b.Ancestors(id) {
			delete(hits, ancestor)
		}
	}

	out := make([]SymptomID, 0, len(hits))
	for _, s := range b.symptoms {
		if hits[s.ID] {
			out = append(out, s.ID)
		}
	}
	return out
}

// Ancestors returns the chain of parents of id, nearest first.
func (b *Base) Ancestors(id SymptomID) []SymptomID {
	var out []SymptomID
	s, ok := b.Symptom(id)
	for ok && s.Parent != "" {
		out = append(out, s.Parent)
		s, ok = b.Symptom(s.Parent)
	}
	return out
}

// Expand returns ids plus all of their ancestors.
func (b *Base) Expand(ids []SymptomID) map[SymptomID]bool {
	set := make(map[SymptomID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
		for _, ancestor := range b.Ancestors(id) {
			set[ancestor] = true
		}
	}
	return set
}

// Descendants returns every symptom that specialises id, in catalogue order.
func (b *Base) Descendants(id SymptomID) []SymptomID {
	var out []SymptomID
	for _, s := range b.symptoms {
		if slices.Contains(b.Ancestors(s.ID), id) {
			out = append(out, s.ID)
		}
	}
	return out
}

// InferredWeight is the evidence a reported symptom lends to one of its
// specialisations: "fever" meets a "high fever" edge, at half strength.
const InferredWeight = 0.5

// Evidence weighs how strongly each symptom is present, from 0 to 1.
type Evidence map[SymptomID]float64

// Related returns the evidence for ids. Reported symptoms and their
// ancestors count fully and their descendants count InferredWeight, so a
// reported "high fever" satisfies "fever" and a reported "fever" satisfies
// "high fever". Siblings such as "high fever" and "mild fever" stay apart.
func (b *Base) Related(ids []SymptomID) Evidence {
	ev := make(Evidence)
	for id := range b.Expand(ids) {
		ev[id] = 1
	}
	for _, id := range ids {
		for _, d := range b.Descendants(id) {
			if ev[d] < InferredWeight {
				ev[d] = InferredWeight
			}
		}
	}
	return ev
}

// Score measures how well the evidence fits d. Coverage is the fraction of
// d's edges that are present at all; likelihood weighs the same edges by
// their probabilities and the strength of the evidence.
func (d Disease) Score(present Evidence) (matched []SymptomID, coverage, likelihood float64) {
	var total, hit float64
	for _, e := range d.Edges {
		total += e.Probability
		if w := present[e.SymptomID]; w > 0 {
			matched = append(matched, e.SymptomID)
			hit += e.Probability * w
		}
	}
	if len(d.Edges) == 0 || total == 0 {
		return nil, 0, 0
	}
	return matched, float64(len(matched)) / float64(len(d.Edges)), hit / total
}

func containsRun(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}
