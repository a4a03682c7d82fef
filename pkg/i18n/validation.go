package i18n

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Validation renders one validation error in lang. The field name and a
// pattern description are replaced by their catalog labels under
// "fields.<name>" and "patterns.<name>" when present. Without a catalog
// entry for the error's key the built-in English message is used.
func (t *Translator) Validation(lang string, ve validator.ValidationError) string {
	args := make([]string, 0, 2*len(ve.TranslationValues)+2)
	for _, k := range sortedKeys(ve.TranslationValues) {
		v := fmt.Sprint(ve.TranslationValues[k])
		switch k {
		case "field":
			v = t.Label(lang, v)
		case "description":
			v = t.Td(lang, "patterns."+v, v)
		}
		args = append(args, k, v)
	}
	if _, ok := ve.TranslationValues["field"]; !ok && ve.Field != "" {
		args = append(args, "field", t.Label(lang, ve.Field))
	}

	key := ve.TranslationKey
	if key == "" {
		key = "validation." + string(ve.Kind)
	}
	return t.Td(lang, key, ve.Message, args...)
}

// Failures renders every failure of one field, in kind order.
func (t *Translator) Failures(lang string, f validator.Failures) []string {
	if len(f) == 0 {
		return nil
	}
	out := make([]string, 0, len(f))
	for _, k := range f.Kinds() {
		out = append(out, t.Validation(lang, f[k]))
	}
	return out
}

// Label returns the display label of a field, or the name itself.
func (t *Translator) Label(lang, field string) string {
	return t.Td(lang, "fields."+field, field)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
