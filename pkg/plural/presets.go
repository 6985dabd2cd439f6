package plural

import (
	"strings"

	"golang.org/x/text/language"
)

// Rule strings for common language families. The zone order is the order in
// which templates list their alternatives.
const (
	// EnglishRule: one (1), other.
	EnglishRule = "(1)(*)"
	// GermanicRule: one (1), other. German, Dutch, Swedish, Norwegian, Danish.
	GermanicRule = "(1)(*)"
	// RomanceRule: one (0, 1 and fractions below 2), other. French, Portuguese.
	RomanceRule = "(0→1:[0→2[)(*)"
	// SpanishRule: one (1), other. Spanish, Italian.
	SpanishRule = "(1)(*)"
	// EastSlavicRule: one (…1 except …11), few (…2-…4 except …12-…14), many.
	// Russian, Ukrainian, Belarusian, Croatian, Serbian, Bosnian.
	EastSlavicRule = "({*[^1]}1)({*[^1]}[2→4])(*)"
	// PolishRule: one (1), few (…2-…4 except …12-…14), many.
	PolishRule = "(1)({*[^1]}[2→4])(*)"
	// CzechRule: one (1), few (2-4), other. Czech, Slovak.
	CzechRule = "(1)(2→4)(*)"
	// AsianRule: a single form. Japanese, Chinese, Korean, Thai, Vietnamese.
	AsianRule = "(*)"
	// ArabicRule: zero, one, two, few (…03-…10), many (…11-…99), other.
	ArabicRule = "(0)(1)(2)({*0}[3→9]:*10)(*[1→9]?)(*)"
	// DefaultRule is used for languages without a specific rule.
	DefaultRule = "(1)(*)"
)

// RuleForLanguage returns the rule string for a language tag, based on its
// base language.
func RuleForLanguage(tag language.Tag) string {
	base, _ := tag.Base()
	return ruleForCode(base.String())
}

// RuleForCode returns the rule string for a language code such as "pl" or
// "en-US". Unparsable codes fall back to their first two letters.
func RuleForCode(code string) string {
	if tag, err := language.Parse(code); err == nil {
		return RuleForLanguage(tag)
	}
	if len(code) >= 2 {
		code = code[:2]
	}
	return ruleForCode(strings.ToLower(code))
}

// ForLanguage returns the definition for a language tag.
func ForLanguage(tag language.Tag, opts ...Option) *Definition {
	return Parse(RuleForLanguage(tag), opts...)
}

// ForCode returns the definition for a language code.
func ForCode(code string, opts ...Option) *Definition {
	return Parse(RuleForCode(code), opts...)
}

func ruleForCode(code string) string {
	switch code {
	case "en":
		return EnglishRule
	case "de", "nl", "sv", "no", "nb", "nn", "da", "is":
		return GermanicRule
	case "fr", "pt":
		return RomanceRule
	case "es", "it":
		return SpanishRule
	case "ru", "uk", "be", "hr", "sr", "bs":
		return EastSlavicRule
	case "pl":
		return PolishRule
	case "cs", "sk":
		return CzechRule
	case "ja", "zh", "ko", "th", "vi", "id", "ms":
		return AsianRule
	case "ar":
		return ArabicRule
	default:
		return DefaultRule
	}
}
