package i18n

import "maps"

// Translator resolves message keys to localized strings. It is immutable
// once built and safe for concurrent use.
type Translator struct {
	tables map[Code]map[string]string
}

// NewTranslator creates a translator over the built-in message tables.
func NewTranslator() *Translator {
	tables := make(map[Code]map[string]string, len(translations))
	for code, table := range translations {
		tables[code] = maps.Clone(table)
	}
	return &Translator{tables: tables}
}

// Translate returns the message for key in lang, falling back to English and
// finally to the key itself.
func (t *Translator) Translate(key string, lang Code) string {
	if msg, ok := t.tables[lang][key]; ok {
		return msg
	}
	if msg, ok := t.tables[English][key]; ok {
		return msg
	}
	return key
}

// All returns every message for lang with English filling the gaps.
func (t *Translator) All(lang Code) map[string]string {
	out := maps.Clone(t.tables[English])
	maps.Copy(out, t.tables[lang])
	return out
}
