package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is used when nothing better matches.
const DefaultLanguage = "en"

// MatchLanguage picks the supported language closest to preferred, which
// may be a single tag ("es-MX") or an Accept-Language style list
// ("es-MX, en;q=0.5"). It returns fallback when nothing matches with at
// least low confidence.
func MatchLanguage(preferred string, supported []string, fallback string) string {
	if preferred == "" || len(supported) == 0 {
		return fallback
	}

	prefs, _, err := language.ParseAcceptLanguage(preferred)
	if err != nil || len(prefs) == 0 {
		return fallback
	}

	tags := make([]language.Tag, 0, len(supported))
	names := make([]string, 0, len(supported))
	for _, s := range supported {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, s)
	}
	if len(tags) == 0 {
		return fallback
	}

	_, idx, conf := language.NewMatcher(tags).Match(prefs...)
	if conf == language.No {
		return fallback
	}
	return names[idx]
}
