package validator

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

func builtins() map[Kind]Definition {
	return map[Kind]Definition{
		KindRequired: {
			Check:          checkRequired,
			Message:        func(Rule) string { return "field is required" },
			TranslationKey: "validation.required",
		},
		KindRequiredTrue: {
			Check:          checkRequiredTrue,
			Message:        func(Rule) string { return "must be accepted" },
			TranslationKey: "validation.required_true",
		},
		KindPattern: {
			Check:    checkPattern,
			Validate: validatePattern,
			Message: func(r Rule) string {
				return fmt.Sprintf("must match %s pattern", patternLabel(r))
			},
			Params: func(r Rule, _ any) map[string]any {
				p := map[string]any{"description": patternLabel(r)}
				if r.Pattern != nil {
					p["pattern"] = r.Pattern.String()
				}
				return p
			},
			TranslationKey: "validation.regex_pattern",
		},
		KindEmail: {
			Check:          checkEmail,
			Message:        func(Rule) string { return "must be a valid email address" },
			TranslationKey: "validation.email",
		},
		KindMinLength: {
			Check:    checkMinLength,
			Validate: validateLength,
			Message: func(r Rule) string {
				return fmt.Sprintf("must be at least %d characters long", r.Length)
			},
			Params:         lengthParams,
			TranslationKey: "validation.min_length",
		},
		KindMaxLength: {
			Check:    checkMaxLength,
			Validate: validateLength,
			Message: func(r Rule) string {
				return fmt.Sprintf("must be at most %d characters long", r.Length)
			},
			Params:         lengthParams,
			TranslationKey: "validation.max_length",
		},
		KindMin: {
			Check: checkMin,
			Message: func(r Rule) string {
				return fmt.Sprintf("must be at least %v", r.Bound)
			},
			Params: func(r Rule, v any) map[string]any {
				p := map[string]any{"min": r.Bound}
				if n, ok := numericValue(v); ok {
					p["actual"] = n
				}
				return p
			},
			TranslationKey: "validation.min",
		},
		KindUserExists: {
			Check:          reservedCheck,
			Validate:       reservedKind,
			Message:        func(Rule) string { return "is already taken" },
			TranslationKey: "validation.user_exists",
		},
		KindCheckFailed: {
			Check:          reservedCheck,
			Validate:       reservedKind,
			Message:        func(Rule) string { return "could not be verified" },
			TranslationKey: "validation.check_failed",
		},
		KindMatchingRequired: {
			Check:          reservedCheck,
			Validate:       reservedKind,
			Message:        func(Rule) string { return "does not match" },
			TranslationKey: "validation.matching_required",
		},
	}
}

// isEmpty treats nil, the empty string and false as "no value".
func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	default:
		return false
	}
}

func checkRequired(_ Rule, v any) bool {
	return !isEmpty(v)
}

func checkRequiredTrue(_ Rule, v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func checkPattern(r Rule, v any) bool {
	if isEmpty(v) || r.Pattern == nil {
		return true
	}
	return r.Pattern.MatchString(fmt.Sprint(v))
}

func checkEmail(_ Rule, v any) bool {
	s, ok := v.(string)
	if !ok || s == "" {
		return true
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	// Reject display-name forms such as "Jane <jane@example.com>".
	return addr.Address == s && !strings.ContainsAny(s, " <>")
}

func checkMinLength(r Rule, v any) bool {
	s, ok := v.(string)
	if !ok || s == "" {
		return true
	}
	return utf8.RuneCountInString(s) >= r.Length
}

func checkMaxLength(r Rule, v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return utf8.RuneCountInString(s) <= r.Length
}

func checkMin(r Rule, v any) bool {
	if isEmpty(v) {
		return true
	}
	n, ok := numericValue(v)
	if !ok {
		return true
	}
	return n >= r.Bound
}

func reservedCheck(Rule, any) bool { return true }

func reservedKind(r Rule) error {
	return fmt.Errorf("%w: %s is produced by the form, not declared as a rule", ErrInvalidRule, r.Kind)
}

func validatePattern(r Rule) error {
	if r.Pattern == nil {
		return fmt.Errorf("%w: pattern rule without expression", ErrInvalidRule)
	}
	return nil
}

func validateLength(r Rule) error {
	if r.Length < 0 {
		return fmt.Errorf("%w: negative length %d", ErrInvalidRule, r.Length)
	}
	return nil
}

func lengthParams(r Rule, v any) map[string]any {
	p := map[string]any{"required_length": r.Length}
	if s, ok := v.(string); ok {
		p["actual_length"] = utf8.RuneCountInString(s)
	}
	return p
}

func patternLabel(r Rule) string {
	if r.PatternName != "" {
		return r.PatternName
	}
	if r.Pattern != nil {
		return r.Pattern.String()
	}
	return "required"
}

// numericValue reads a number the way a lenient prefix parse does: leading
// whitespace is skipped, the longest decimal literal prefix is used and the
// rest ignored, so "3abc" is 3 and "0x3" is 0. Infinity may be spelled out
// with an optional sign. Anything else is not numeric, and booleans never
// are.
func numericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case string:
		return parseNumericPrefix(val)
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		if math.IsNaN(val) {
			return 0, false
		}
		return val, true
	default:
		return 0, false
	}
}

func parseNumericPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})

	sign := ""
	rest := s
	if rest != "" && (rest[0] == '+' || rest[0] == '-') {
		sign, rest = rest[:1], rest[1:]
	}
	if strings.HasPrefix(rest, "Infinity") {
		if sign == "-" {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	end := scanDigits(rest, 0)
	intDigits := end
	fracDigits := 0
	if end < len(rest) && rest[end] == '.' {
		fracEnd := scanDigits(rest, end+1)
		fracDigits = fracEnd - end - 1
		if intDigits > 0 || fracDigits > 0 {
			end = fracEnd
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0, false
	}
	if end < len(rest) && (rest[end] == 'e' || rest[end] == 'E') {
		exp := end + 1
		if exp < len(rest) && (rest[exp] == '+' || rest[exp] == '-') {
			exp++
		}
		if expEnd := scanDigits(rest, exp); expEnd > exp {
			end = expEnd
		}
	}

	n, err := strconv.ParseFloat(sign+rest[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

func scanDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}
