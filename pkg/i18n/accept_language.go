package i18n

import "golang.org/x/text/language"

// maxAcceptLanguageLength bounds the header parsed from untrusted input.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage picks the best of available for an Accept-Language
// header using the x/text matcher, which honours q-values and falls back from
// regional variants to their base language. Without a usable match it
// returns available[0]; with no languages it returns "".
//
//	ParseAcceptLanguage("en-US,en;q=0.9,pl;q=0.8", []string{"pl", "en", "de"}) // "en"
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return available[0]
	}

	tags := make([]language.Tag, 0, len(available))
	index := make([]int, 0, len(available))
	for i, a := range available {
		if t, err := language.Parse(a); err == nil {
			tags = append(tags, t)
			index = append(index, i)
		}
	}
	if len(tags) == 0 {
		return available[0]
	}

	_, i, conf := language.NewMatcher(tags).Match(desired...)
	if conf == language.No {
		return available[0]
	}
	return available[index[i]]
}
