package token

import "fmt"

// Token is a delimiter specification. Interior is empty for one-word tokens.
type Token struct {
	Left     string `json:"left" yaml:"left"`
	Interior string `json:"interior,omitempty" yaml:"interior,omitempty"`
	Right    string `json:"right" yaml:"right"`
}

// OneWord returns a token wrapping a single content region.
// left and right may be equal.
func OneWord(left, right string) Token {
	return Token{Left: left, Right: right}
}

// MultipleWords returns a token whose content is split into alternatives by interior.
func MultipleWords(left, interior, right string) Token {
	return Token{Left: left, Interior: interior, Right: right}
}

// IsMultipleWords reports whether the token has an interior delimiter.
func (t Token) IsMultipleWords() bool {
	return t.Interior != ""
}

// Strings returns the distinct delimiter strings of the token in scan order.
// A one-word token with equal left and right yields a single string.
func (t Token) Strings() []string {
	switch {
	case t.IsMultipleWords():
		return []string{t.Left, t.Interior, t.Right}
	case t.Left == t.Right:
		return []string{t.Left}
	default:
		return []string{t.Left, t.Right}
	}
}

func (t Token) String() string {
	if t.IsMultipleWords() {
		return t.Left + "…" + t.Interior + "…" + t.Right
	}
	return t.Left + "…" + t.Right
}

// Dictionary describes the dictionary token "@[id|key:value|key:value¦default]".
type Dictionary struct {
	Left      string `json:"left" yaml:"left"`
	Separator string `json:"separator" yaml:"separator"`
	KeyValue  string `json:"key_value" yaml:"key_value"`
	Default   string `json:"default" yaml:"default"`
	Right     string `json:"right" yaml:"right"`
}

// DefaultDictionary is the "@[id|key:value¦default]" dictionary format.
var DefaultDictionary = Dictionary{
	Left:      "@[",
	Separator: "|",
	KeyValue:  ":",
	Default:   "¦",
	Right:     "]",
}

// Strings returns the delimiter strings of the dictionary token.
func (d Dictionary) Strings() []string {
	return []string{d.Left, d.Separator, d.KeyValue, d.Default, d.Right}
}

// Token returns the outer pair of the dictionary as a one-word token.
func (d Dictionary) Token() Token {
	return OneWord(d.Left, d.Right)
}

// Range is a half-open byte range [Start, End) of a text.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the byte length of the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether o lies entirely inside r.
func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// Overlaps reports whether r and o share at least one byte.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// delimiter is one token string tagged with the index of the token owning it.
type delimiter struct {
	value string
	owner int
}

// ValidateSet checks that the escape token (optional) and all token strings of
// the given tokens are non-empty and unambiguous: no non-empty prefix of a
// delimiter may be a suffix of another delimiter. A one-word token reusing the
// same string for left and right is allowed.
func ValidateSet(escape string, tokens ...Token) error {
	groups := make([][]string, 0, len(tokens)+1)
	for _, t := range tokens {
		groups = append(groups, t.Strings())
	}
	return validate(escape, groups)
}

// ValidateAll is ValidateSet extended with dictionary tokens.
func ValidateAll(escape string, tokens []Token, dictionaries []Dictionary) error {
	groups := make([][]string, 0, len(tokens)+len(dictionaries))
	for _, t := range tokens {
		groups = append(groups, t.Strings())
	}
	for _, d := range dictionaries {
		groups = append(groups, d.Strings())
	}
	return validate(escape, groups)
}

func validate(escape string, groups [][]string) error {
	var all []delimiter
	for owner, strs := range groups {
		for _, s := range strs {
			if s == "" {
				return fmt.Errorf("%w: token #%d", ErrEmptyToken, owner)
			}
			all = append(all, delimiter{value: s, owner: owner})
		}
	}
	if escape != "" {
		all = append(all, delimiter{value: escape, owner: -1})
	}

	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			if prefixIsSuffix(a.value, b.value) {
				return fmt.Errorf("%w: %q and %q", ErrOverlappingTokens, a.value, b.value)
			}
		}
	}
	return nil
}

// prefixIsSuffix reports whether some non-empty prefix of a is a suffix of b.
func prefixIsSuffix(a, b string) bool {
	n := min(len(a), len(b))
	for k := 1; k <= n; k++ {
		if a[:k] == b[len(b)-k:] {
			return true
		}
	}
	return false
}
