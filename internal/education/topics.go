// Package education serves the health education library: short topics on
// prevention, hygiene, nutrition, first aid, maternal, child and chronic
// care, plus per-user read tracking.
package education

import (
	"slices"
	"strings"

	"github.com/vitavoice/platform/internal/i18n"
)

// Category groups topics.
type Category string

const (
	CategoryPrevention Category = "prevention"
	CategoryHygiene    Category = "hygiene"
	CategoryNutrition  Category = "nutrition"
	CategoryFirstAid   Category = "first_aid"
	CategoryMaternal   Category = "maternal"
	CategoryChild      Category = "child"
	CategoryChronic    Category = "chronic"
)

// CategoryInfo is a category with its display name.
type CategoryInfo struct {
	ID   Category `json:"id"`
	Name string   `json:"name"`
}

var categories = []CategoryInfo{
	{CategoryPrevention, "Disease Prevention"},
	{CategoryHygiene, "Hygiene & Sanitation"},
	{CategoryNutrition, "Nutrition"},
	{CategoryFirstAid, "First Aid"},
	{CategoryMaternal, "Maternal Health"},
	{CategoryChild, "Child Health"},
	{CategoryChronic, "Chronic Diseases"},
}

// Categories lists the categories in display order.
func Categories() []CategoryInfo {
	return slices.Clone(categories)
}

func (c Category) valid() bool {
	return slices.ContainsFunc(categories, func(info CategoryInfo) bool { return info.ID == c })
}

// Topic is one education article.
type Topic struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Category      Category `json:"category"`
	Language      string   `json:"language"`
	Content       string   `json:"content"`
	KeyPoints     []string `json:"key_points"`
	RelatedTopics []string `json:"related_topics,omitempty"`
}

// All returns every topic.
func All() []Topic {
	return slices.Clone(topics)
}

// ByCategory returns the topics in c.
func ByCategory(c Category) []Topic {
	out := []Topic{}
	for _, t := range topics {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// Find looks up a topic by ID.
func Find(id string) (Topic, bool) {
	i := slices.IndexFunc(topics, func(t Topic) bool { return t.ID == id })
	if i < 0 {
		return Topic{}, false
	}
	return topics[i], true
}

// Search returns topics whose title, content or any key point contains
// query, compared case-insensitively after Unicode folding. A blank query matches
// nothing.
func Search(query string) []Topic {
	q := i18n.Fold(query)
	out := []Topic{}
	if q == "" {
		return out
	}
	for _, t := range topics {
		if t.matches(q) {
			out = append(out, t)
		}
	}
	return out
}

func (t Topic) matches(folded string) bool {
	if strings.Contains(i18n.Fold(t.Title), folded) || strings.Contains(i18n.Fold(t.Content), folded) {
		return true
	}
	return slices.ContainsFunc(t.KeyPoints, func(p string) bool {
		return strings.Contains(i18n.Fold(p), folded)
	})
}

// Related returns the topics linked from id. Unknown IDs, or links to
// topics that no longer exist, are skipped.
func Related(id string) []Topic {
	out := []Topic{}
	t, ok := Find(id)
	if !ok {
		return out
	}
	for _, rid := range t.RelatedTopics {
		if r, ok := Find(rid); ok {
			out = append(out, r)
		}
	}
	return out
}
