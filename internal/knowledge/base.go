package knowledge

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/vitavoice/platform/internal/i18n"
)

// Base is a validated, immutable knowledge base. All methods are safe for
// concurrent use; returned values share slices with the base and must be
// treated as read-only.
type Base struct {
	symptoms   []Symptom
	symptomIdx map[SymptomID]int
	diseases   []Disease
	diseaseIdx map[DiseaseID]int

	aliases   map[string]SymptomID
	phrases   []phrase
	bySymptom map[SymptomID][]Association
}

type phrase struct {
	tokens []string
	id     SymptomID
}

// New returns a knowledge base over the built-in catalogue.
func New() *Base {
	b, err := FromCatalogue(Seed())
	if err != nil {
		panic("knowledge: invalid seed catalogue: " + err.Error())
	}
	return b
}

// Load reads a JSON catalogue.
func Load(r io.Reader) (*Base, error) {
	var c Catalogue
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}
	return FromCatalogue(c)
}

// LoadFile reads a JSON catalogue from path.
func LoadFile(path string) (*Base, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalogue: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// FromCatalogue validates c and builds the lookup indexes.
func FromCatalogue(c Catalogue) (*Base, error) {
	b := &Base{
		symptoms:   make([]Symptom, len(c.Symptoms)),
		symptomIdx: make(map[SymptomID]int, len(c.Symptoms)),
		diseases:   make([]Disease, len(c.Diseases)),
		diseaseIdx: make(map[DiseaseID]int, len(c.Diseases)),
		aliases:    make(map[string]SymptomID),
		bySymptom:  make(map[SymptomID][]Association),
	}
	copy(b.symptoms, c.Symptoms)
	copy(b.diseases, c.Diseases)

	for i := range b.symptoms {
		s := &b.symptoms[i]
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("symptom %d: id and name are required", i)
		}
		if _, dup := b.symptomIdx[s.ID]; dup {
			return nil, fmt.Errorf("duplicate symptom id %s", s.ID)
		}
		if s.Source == "" {
			s.Provenance = curated
		}
		b.symptomIdx[s.ID] = i
	}

	for _, s := range b.symptoms {
		if err := b.checkParents(s); err != nil {
			return nil, err
		}
		if err := b.indexTerms(s); err != nil {
			return nil, err
		}
	}

	for i := range b.diseases {
		if err := b.addDisease(i); err != nil {
			return nil, err
		}
	}

	for id := range b.bySymptom {
		slices.SortStableFunc(b.bySymptom[id], func(x, y Association) int {
			return cmp.Compare(y.Probability, x.Probability)
		})
	}

	return b, nil
}

func (b *Base) checkParents(s Symptom) error {
	seen := map[SymptomID]bool{s.ID: true}
	for parent := s.Parent; parent != ""; {
		i, ok := b.symptomIdx[parent]
		if !ok {
			return fmt.Errorf("symptom %s: unknown parent %s", s.ID, parent)
		}
		if seen[parent] {
			return fmt.Errorf("symptom %s: parent cycle through %s", s.ID, parent)
		}
		seen[parent] = true
		parent = b.symptoms[i].Parent
	}
	return nil
}

func (b *Base) indexTerms(s Symptom) error {
	terms := append([]string{s.Name}, s.Aliases...)
	for _, term := range s.Languages {
		terms = append(terms, term)
	}
	for _, term := range terms {
		key := i18n.Fold(term)
		if key == "" {
			continue
		}
		if owner, ok := b.aliases[key]; ok {
			if owner != s.ID {
				return fmt.Errorf("term %q maps to both %s and %s", term, owner, s.ID)
			}
			continue
		}
		b.aliases[key] = s.ID
		b.phrases = append(b.phrases, phrase{tokens: i18n.Tokenize(term), id: s.ID})
	}
	return nil
}

func (b *Base) addDisease(i int) error {
	d := &b.diseases[i]
	if d.ID == "" || d.Name == "" {
		return fmt.Errorf("disease %d: id and name are required", i)
	}
	if _, dup := b.diseaseIdx[d.ID]; dup {
		return fmt.Errorf("duplicate disease id %s", d.ID)
	}
	if !d.Severity.valid() {
		return fmt.Errorf("disease %s: invalid severity %q", d.ID, d.Severity)
	}
	if d.Family == "" {
		d.Family = FamilyOther
	}
	if !d.Family.valid() {
		return fmt.Errorf("disease %s: invalid family %q", d.ID, d.Family)
	}
	if len(d.Edges) == 0 {
		return fmt.Errorf("disease %s: at least one symptom edge is required", d.ID)
	}
	if d.Source == "" {
		d.Provenance = curated
	}

	seen := make(map[SymptomID]bool, len(d.Edges))
	for _, e := range d.Edges {
		si, ok := b.symptomIdx[e.SymptomID]
		if !ok {
			return fmt.Errorf("disease %s: unknown symptom %s", d.ID, e.SymptomID)
		}
		if seen[e.SymptomID] {
			return fmt.Errorf("disease %s: duplicate edge to %s", d.ID, e.SymptomID)
		}
		if e.Probability <= 0 || e.Probability > 1 {
			return fmt.Errorf("disease %s: probability for %s must be in (0,1]", d.ID, e.SymptomID)
		}
		seen[e.SymptomID] = true
		b.bySymptom[e.SymptomID] = append(b.bySymptom[e.SymptomID], Association{
			SymptomID:   e.SymptomID,
			SymptomName: b.symptoms[si].Name,
			DiseaseID:   d.ID,
			DiseaseName: d.Name,
			Probability: e.Probability,
			Confidence:  e.Confidence,
		})
	}

	b.diseaseIdx[d.ID] = i
	return nil
}

// Symptom returns the symptom with id.
func (b *Base) Symptom(id SymptomID) (Symptom, bool) {
	i, ok := b.symptomIdx[id]
	if !ok {
		return Symptom{}, false
	}
	return b.symptoms[i], true
}

// Disease returns the disease with id.
func (b *Base) Disease(id DiseaseID) (Disease, bool) {
	i, ok := b.diseaseIdx[id]
	if !ok {
		return Disease{}, false
	}
	return b.diseases[i], true
}

// Symptoms returns all symptoms in catalogue order.
func (b *Base) Symptoms() []Symptom {
	return slices.Clone(b.symptoms)
}

// Diseases returns all diseases in catalogue order, which is also the
// order used to break ties when ranking matches.
func (b *Base) Diseases() []Disease {
	return slices.Clone(b.diseases)
}

// DiseasesForSymptom lists the diseases linked to a symptom, most probable first.
func (b *Base) DiseasesForSymptom(id SymptomID) []Association {
	return slices.Clone(b.bySymptom[id])
}

// SymptomsForDisease lists a disease's symptom edges in catalogue order.
func (b *Base) SymptomsForDisease(id DiseaseID) []Association {
	d, ok := b.Disease(id)
	if !ok {
		return nil
	}
	out := make([]Association, 0, len(d.Edges))
	for _, e := range d.Edges {
		s, _ := b.Symptom(e.SymptomID)
		out = append(out, Association{
			SymptomID:   e.SymptomID,
			SymptomName: s.Name,
			DiseaseID:   d.ID,
			DiseaseName: d.Name,
			Probability: e.Probability,
			Confidence:  e.Confidence,
		})
	}
	return out
}

// IsEmergencyCondition reports whether a disease is flagged as an emergency.
func (b *Base) IsEmergencyCondition(id DiseaseID) bool {
	d, ok := b.Disease(id)
	return ok && d.Emergency
}

// LocalizedName returns the name of a symptom or disease in lang, falling
// back to English and then to the canonical name.
func (b *Base) LocalizedName(id string, lang i18n.Code) (string, bool) {
	var name string
	var langs map[i18n.Code]string
	if s, ok := b.Symptom(SymptomID(id)); ok {
		name, langs = s.Name, s.Languages
	} else if d, ok := b.Disease(DiseaseID(id)); ok {
		name, langs = d.Name, d.Languages
	} else {
		return "", false
	}
	if v, ok := langs[lang]; ok {
		return v, true
	}
	if v, ok := langs[i18n.English]; ok {
		return v, true
	}
	return name, true
}

// Search finds symptoms and diseases whose name, aliases or localized name
// contain query. An empty lang searches every language.
func (b *Base) Search(query string, lang i18n.Code) []Entity {
	q := i18n.Fold(query)
	if q == "" {
		return nil
	}

	var out []Entity
	for _, s := range b.symptoms {
		if termsContain(q, s.Name, s.Aliases, s.Languages, lang) {
			out = append(out, b.entity(string(s.ID), EntitySymptom, s.Name, lang))
		}
	}
	for _, d := range b.diseases {
		if termsContain(q, d.Name, d.Aliases, d.Languages, lang) {
			out = append(out, b.entity(string(d.ID), EntityDisease, d.Name, lang))
		}
	}
	return out
}

func (b *Base) entity(id string, typ EntityType, name string, lang i18n.Code) Entity {
	localized, _ := b.LocalizedName(id, lang)
	return Entity{ID: id, Type: typ, Name: name, LocalizedName: localized}
}

func termsContain(q, name string, aliases []string, langs map[i18n.Code]string, lang i18n.Code) bool {
	if strings.Contains(i18n.Fold(name), q) {
		return true
	}
	for _, a := range aliases {
		if strings.Contains(i18n.Fold(a), q) {
			return true
		}
	}
	for code, term := range langs {
		if (lang == "" || code == lang) && strings.Contains(i18n.Fold(term), q) {
			return true
		}
	}
	return false
}

// Stats summarises the catalogue.
func (b *Base) Stats() Stats {
	langs := map[i18n.Code]bool{i18n.English: true}
	sources := map[string]bool{}
	st := Stats{
		Symptoms: len(b.symptoms),
		Diseases: len(b.diseases),
		Aliases:  len(b.aliases),
	}
	for _, s := range b.symptoms {
		for code := range s.Languages {
			langs[code] = true
		}
		sources[s.Source] = true
	}
	for _, d := range b.diseases {
		st.Edges += len(d.Edges)
		if d.Emergency {
			st.EmergencyDiseases++
		}
		sources[d.Source] = true
	}
	for code := range langs {
		st.Languages = append(st.Languages, code)
	}
	for src := range sources {
		st.Sources = append(st.Sources, src)
	}
	slices.Sort(st.Languages)
	slices.Sort(st.Sources)
	return st
}
