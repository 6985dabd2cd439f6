package plural

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// rangeDash separates interval bounds and digit ranges inside glob classes.
const rangeDash = "→"

// ZoneValue is one predicate of a zone.
type ZoneValue interface {
	// MatchInt reports whether an integer value satisfies the predicate.
	MatchInt(v Value) bool
	// MatchFloat reports whether a fractional value satisfies the predicate.
	// Numbers match when the distance is at most precision.
	MatchFloat(v Value, precision *big.Rat) bool
	String() string
}

// Number matches one exact value.
type Number struct {
	Value Value
}

func (n Number) MatchInt(v Value) bool {
	return n.Value.IsInteger() && Compare(n.Value, v) == 0
}

func (n Number) MatchFloat(v Value, precision *big.Rat) bool {
	if precision == nil || precision.Sign() == 0 {
		return Compare(n.Value, v) == 0
	}
	diff := new(big.Rat).Sub(n.Value.Rat(), v.Rat())
	return diff.Abs(diff).Cmp(precision) <= 0
}

func (n Number) String() string {
	return n.Value.String()
}

// IntervalOfInts matches integers in [Start, End]. Nil bounds are open-ended.
type IntervalOfInts struct {
	Start *Value
	End   *Value
}

func (r IntervalOfInts) MatchInt(v Value) bool {
	if r.Start != nil && Compare(v, *r.Start) < 0 {
		return false
	}
	if r.End != nil && Compare(v, *r.End) > 0 {
		return false
	}
	return true
}

func (IntervalOfInts) MatchFloat(Value, *big.Rat) bool {
	return false
}

func (r IntervalOfInts) String() string {
	return bound(r.Start) + rangeDash + bound(r.End)
}

// IntervalOfFloats matches fractional values between Start and End, each bound
// being open or closed. Nil bounds are open-ended.
type IntervalOfFloats struct {
	Start     *Value
	End       *Value
	StartOpen bool
	EndOpen   bool
}

func (IntervalOfFloats) MatchInt(Value) bool {
	return false
}

func (r IntervalOfFloats) MatchFloat(v Value, _ *big.Rat) bool {
	if r.Start != nil {
		c := Compare(v, *r.Start)
		if c < 0 || (c == 0 && r.StartOpen) {
			return false
		}
	}
	if r.End != nil {
		c := Compare(v, *r.End)
		if c > 0 || (c == 0 && r.EndOpen) {
			return false
		}
	}
	return true
}

func (r IntervalOfFloats) String() string {
	open, closing := "[", "]"
	if r.StartOpen {
		open = "]"
	}
	if r.EndOpen {
		closing = "["
	}
	return open + bound(r.Start) + rangeDash + bound(r.End) + closing
}

// Glob matches the decimal digits of a value against a compiled pattern.
// Integers are matched by their digits and fractional values by their full
// absolute value, so only patterns with a separator, and the bare '*', accept
// a fraction.
type Glob struct {
	re         *regexp.Regexp
	Pattern    string
	fractional bool
}

// CompileGlob compiles a digit glob:
// '*' any digit run, '?' one digit, '{…}' optional group,
// '[…]' digit class (leading '^' negates, '→' is the range dash),
// '.' the decimal separator (trailing '.' requires a fraction),
// optional leading '^' and trailing '$' anchors.
func CompileGlob(pattern string) (Glob, error) {
	body := strings.TrimPrefix(pattern, "^")
	body = strings.TrimSuffix(body, "$")
	if body == "" {
		return Glob{}, fmt.Errorf("%w: empty glob %q", ErrInvalidZoneValue, pattern)
	}

	var b strings.Builder
	inClass := false
	classStart := false
	fractional := false
	for _, r := range body {
		if inClass {
			switch {
			case r == ']':
				b.WriteByte(']')
				inClass = false
			case r == '^' && classStart:
				b.WriteByte('^')
			case string(r) == rangeDash:
				b.WriteByte('-')
			case r >= '0' && r <= '9':
				b.WriteRune(r)
			default:
				return Glob{}, fmt.Errorf("%w: unexpected %q in class of %q", ErrInvalidZoneValue, r, pattern)
			}
			classStart = false
			continue
		}

		switch {
		case r == '*':
			b.WriteString(`\d*`)
		case r == '?':
			b.WriteString(`\d`)
		case r == '{':
			b.WriteString(`(?:`)
		case r == '}':
			b.WriteString(`)?`)
		case r == '[':
			b.WriteByte('[')
			inClass = true
			classStart = true
		case r == '.':
			if fractional {
				return Glob{}, fmt.Errorf("%w: more than one separator in %q", ErrInvalidZoneValue, pattern)
			}
			b.WriteString(`\.`)
			fractional = true
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			return Glob{}, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidZoneValue, r, pattern)
		}
	}
	if inClass {
		return Glob{}, fmt.Errorf("%w: unclosed class in %q", ErrInvalidZoneValue, pattern)
	}
	if strings.HasSuffix(body, ".") {
		b.WriteString(`\d+`)
	}
	if body == "*" {
		b.WriteString(`(?:\.\d+)?`)
	}

	re, err := regexp.Compile(`^(?:` + b.String() + `)$`)
	if err != nil {
		return Glob{}, fmt.Errorf("%w: %q: %s", ErrInvalidZoneValue, pattern, err)
	}
	return Glob{re: re, Pattern: pattern, fractional: fractional}, nil
}

func (g Glob) MatchInt(v Value) bool {
	if g.re == nil || g.fractional {
		return false
	}
	return g.re.MatchString(v.I())
}

func (g Glob) MatchFloat(v Value, _ *big.Rat) bool {
	if g.re == nil {
		return false
	}
	return g.re.MatchString(v.N())
}

func (g Glob) String() string {
	return g.Pattern
}

// ParseZoneValue parses one ':'-separated element of a zone: a number, a
// bracketed float interval, an int interval or a glob, tried in that order.
func ParseZoneValue(spec string) (ZoneValue, error) {
	if spec == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidZoneValue)
	}
	if v, err := ParseValue(spec); err == nil {
		return Number{Value: v}, nil
	}
	if r, ok := parseFloatInterval(spec); ok {
		return r, nil
	}
	if r, ok := parseIntInterval(spec); ok {
		return r, nil
	}
	return CompileGlob(spec)
}

func parseFloatInterval(spec string) (IntervalOfFloats, bool) {
	if len(spec) < 2 {
		return IntervalOfFloats{}, false
	}
	first, last := spec[0], spec[len(spec)-1]
	if (first != '[' && first != ']') || (last != '[' && last != ']') {
		return IntervalOfFloats{}, false
	}
	lo, hi, ok := splitBounds(spec[1:len(spec)-1], false)
	if !ok {
		return IntervalOfFloats{}, false
	}
	return IntervalOfFloats{
		Start:     lo,
		End:       hi,
		StartOpen: first == ']',
		EndOpen:   last == '[',
	}, true
}

func parseIntInterval(spec string) (IntervalOfInts, bool) {
	lo, hi, ok := splitBounds(spec, true)
	if !ok {
		return IntervalOfInts{}, false
	}
	return IntervalOfInts{Start: lo, End: hi}, true
}

// splitBounds splits "a→b" where either side may be empty.
func splitBounds(s string, integers bool) (lo, hi *Value, ok bool) {
	if strings.Count(s, rangeDash) != 1 {
		return nil, nil, false
	}
	a, b, _ := strings.Cut(s, rangeDash)
	parse := func(x string) (*Value, bool) {
		if x == "" {
			return nil, true
		}
		v, err := ParseValue(x)
		if err != nil || (integers && !v.IsInteger()) {
			return nil, false
		}
		return &v, true
	}
	if lo, ok = parse(a); !ok {
		return nil, nil, false
	}
	if hi, ok = parse(b); !ok {
		return nil, nil, false
	}
	return lo, hi, true
}

func bound(v *Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}
