package scoring

import (
	"log/slog"

	"github.com/jonathan/bob-diagnostic/internal/types"
)

// Genderization suffixes of translation keys.
const (
	feminineSuffix  = "_FEMININE"
	masculineSuffix = "_MASCULINE"
)

// TranslateStaticString translates a French source string to the user's
// locale, falling back to the source.
func (p *Project) TranslateStaticString(text string) string {
	return p.translate(text, text, false)
}

// TranslateGenderizedString is like TranslateStaticString, preferring a
// translation matching the user's gender.
func (p *Project) TranslateGenderizedString(text string) string {
	return p.translate(text, text, true)
}

// TranslateAirtableString translates a field of a content record, keyed as
// "table:id:field". It falls back to hint, the authored French text.
func (p *Project) TranslateAirtableString(table, id, field, hint string) string {
	return p.translate(table+":"+id+":"+field, hint, true)
}

func (p *Project) translate(key, fallback string, genderized bool) string {
	locale := p.Locale()
	for _, candidate := range p.translationKeys(key, genderized) {
		if locale == SourceLocale && candidate == fallback {
			return fallback
		}
		text, ok, err := p.db.Translate(p.ctx, candidate, locale)
		if err != nil {
			slog.Error("failed to read translations", "key", candidate, "locale", locale, "error", err)
			return fallback
		}
		if ok {
			return text
		}
	}
	return fallback
}

func (p *Project) translationKeys(key string, genderized bool) []string {
	if !genderized {
		return []string{key}
	}
	switch p.UserGender() {
	case types.GenderFeminine:
		return []string{key + feminineSuffix, key}
	case types.GenderMasculine:
		return []string{key + masculineSuffix, key}
	default:
		return []string{key}
	}
}
