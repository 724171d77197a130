// Package i18n covers the seven languages the assistant speaks: script
// detection, translation lookup, locale negotiation and text folding.
package i18n

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Code is a two-letter language code.
type Code string

const (
	English   Code = "en"
	Tamil     Code = "ta"
	Telugu    Code = "te"
	Hindi     Code = "hi"
	Bengali   Code = "bn"
	Kannada   Code = "kn"
	Malayalam Code = "ml"
)

// Info describes a supported language.
type Info struct {
	Code       Code   `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	Locale     string `json:"locale"`
}

var languages = []Info{
	{English, "English", "English", "en-IN"},
	{Tamil, "Tamil", "தமிழ்", "ta-IN"},
	{Telugu, "Telugu", "తెలుగు", "te-IN"},
	{Hindi, "Hindi", "हिन्दी", "hi-IN"},
	{Bengali, "Bengali", "বাংলা", "bn-IN"},
	{Kannada, "Kannada", "ಕನ್ನಡ", "kn-IN"},
	{Malayalam, "Malayalam", "മലയാളം", "ml-IN"},
}

// Script ranges are checked in this order; the first script present wins.
var scripts = []struct {
	code   Code
	lo, hi rune
}{
	{Tamil, 0x0B80, 0x0BFF},
	{Telugu, 0x0C00, 0x0C7F},
	{Hindi, 0x0900, 0x097F},
	{Bengali, 0x0980, 0x09FF},
	{Kannada, 0x0C80, 0x0CFF},
	{Malayalam, 0x0D00, 0x0D7F},
}

var matcher = language.NewMatcher(localeTags())

func localeTags() []language.Tag {
	tags := make([]language.Tag, len(languages))
	for i, l := range languages {
		tags[i] = language.MustParse(l.Locale)
	}
	return tags
}

// Languages returns the supported languages, English first.
func Languages() []Info {
	out := make([]Info, len(languages))
	copy(out, languages)
	return out
}

// Lookup returns the description of code.
func Lookup(code Code) (Info, bool) {
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return Info{}, false
}

// Supported reports whether code is one of the supported languages.
func (c Code) Supported() bool {
	_, ok := Lookup(c)
	return ok
}

// ParseCode accepts a bare code or a BCP 47 tag ("ta", "ta-IN", "TA").
func ParseCode(s string) (Code, bool) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	code := Code(base.String())
	return code, code.Supported()
}

// Detect guesses the language of text from the scripts it uses. Text with no
// Indic script is treated as English.
func Detect(text string) Code {
	for _, s := range scripts {
		if strings.ContainsFunc(text, func(r rune) bool { return r >= s.lo && r <= s.hi }) {
			return s.code
		}
	}
	return English
}

// Negotiate picks the best supported language for an Accept-Language header.
func Negotiate(acceptLanguage string) Code {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return English
	}
	return languages[index].Code
}

// Fold normalises text for comparison: NFC composition, Unicode case folding
// and collapsed whitespace.
func Fold(s string) string {
	s = cases.Fold().String(norm.NFC.String(s))
	return strings.Join(strings.Fields(s), " ")
}

// Tokenize folds s and splits it into words. Combining marks stay attached
// so that Indic syllables are not broken apart.
func Tokenize(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r)
	})
}
