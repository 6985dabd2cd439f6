package plural

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is an arbitrary-precision decimal number used for plural selection.
// The integer part has no leading zeros; the fraction keeps its trailing zeros
// because they are significant for the plural operands.
type Value struct {
	integer   string
	fraction  string
	negative  bool
	separator bool
}

// Format controls how integers and floats become a Value.
type Format struct {
	// MinFractionDigits pads the fraction with zeros up to this length.
	MinFractionDigits int
	// MaxFractionDigits rounds the fraction (half-even) to at most this length.
	MaxFractionDigits int
	// AlwaysShowSeparator keeps the decimal separator for values without a fraction.
	AlwaysShowSeparator bool
	// ZeroIsNegative keeps the sign of negative inputs that are or round to zero.
	ZeroIsNegative bool
}

// DefaultFormat keeps up to three fraction digits.
var DefaultFormat = Format{MaxFractionDigits: 3}

// ParseValue parses a canonical decimal string such as "12", "-0.50" or "3.".
func ParseValue(s string) (Value, error) {
	raw := s
	var v Value
	switch {
	case strings.HasPrefix(s, "-"):
		v.negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	intPart, fracPart, hasSep := strings.Cut(s, ".")
	if intPart == "" || !isDigits(intPart) || !isDigits(fracPart) {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}

	v.integer = trimLeadingZeros(intPart)
	v.fraction = fracPart
	v.separator = hasSep
	return v, nil
}

// MustParseValue is like ParseValue but panics on error.
func MustParseValue(s string) Value {
	v, err := ParseValue(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FromInt converts an integer using the format's fraction rules.
func FromInt(n int64, f Format) Value {
	mag := uint64(n)
	if n < 0 {
		mag = uint64(-(n + 1)) + 1
	}
	v := Value{
		integer:   strconv.FormatUint(mag, 10),
		fraction:  strings.Repeat("0", min(max(f.MinFractionDigits, 0), max(f.MaxFractionDigits, 0))),
		negative:  n < 0,
		separator: f.AlwaysShowSeparator,
	}
	return v
}

// FromFloat converts a float through its shortest exact decimal representation,
// rounds half-even to MaxFractionDigits and trims trailing zeros down to
// MinFractionDigits. NaN and infinities are rejected.
func FromFloat(x float64, f Format) (Value, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidNumber, x)
	}

	digits := strconv.FormatFloat(math.Abs(x), 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(digits, ".")
	intPart, fracPart = roundHalfEven(intPart, fracPart, max(f.MaxFractionDigits, 0))

	minDigits := min(max(f.MinFractionDigits, 0), max(f.MaxFractionDigits, 0))
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) < minDigits {
		fracPart += strings.Repeat("0", minDigits-len(fracPart))
	}

	v := Value{
		integer:   trimLeadingZeros(intPart),
		fraction:  fracPart,
		negative:  math.Signbit(x),
		separator: f.AlwaysShowSeparator,
	}
	if v.IsZero() && !f.ZeroIsNegative {
		v.negative = false
	}
	return v, nil
}

// IsNegative reports the sign flag.
func (v Value) IsNegative() bool {
	return v.negative
}

// IsZero reports whether all digits are zero.
func (v Value) IsZero() bool {
	return v.integer == "0" && strings.Trim(v.fraction, "0") == ""
}

// IsInteger reports whether the value carries no fraction digits.
func (v Value) IsInteger() bool {
	return v.fraction == ""
}

// Integer returns the integer digits.
func (v Value) Integer() string {
	return v.integer
}

// Fraction returns the fraction digits including trailing zeros.
func (v Value) Fraction() string {
	return v.fraction
}

// String returns the canonical decimal form, e.g. "-12.50".
func (v Value) String() string {
	var b strings.Builder
	if v.negative {
		b.WriteByte('-')
	}
	b.WriteString(v.N())
	if v.fraction == "" && v.separator {
		b.WriteByte('.')
	}
	return b.String()
}

// N is the absolute value operand.
func (v Value) N() string {
	if v.fraction == "" {
		return v.integer
	}
	return v.integer + "." + v.fraction
}

// I is the integer digits operand.
func (v Value) I() string {
	return v.integer
}

// V is the number of visible fraction digits, with trailing zeros.
func (v Value) V() int {
	return len(v.fraction)
}

// W is the number of visible fraction digits, without trailing zeros.
func (v Value) W() int {
	return len(strings.TrimRight(v.fraction, "0"))
}

// F is the visible fraction digits with trailing zeros, "0" when empty.
func (v Value) F() string {
	if v.fraction == "" {
		return "0"
	}
	return v.fraction
}

// T is the visible fraction digits without trailing zeros, "0" when empty.
func (v Value) T() string {
	t := strings.TrimRight(v.fraction, "0")
	if t == "" {
		return "0"
	}
	return t
}

// Rat returns the exact rational value.
func (v Value) Rat() *big.Rat {
	s := v.N()
	if v.negative {
		s = "-" + s
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return new(big.Rat)
	}
	return r
}

// Equal reports whether both values denote the same number.
func (v Value) Equal(o Value) bool {
	return Compare(v, o) == 0
}

// Compare orders values by sign, integer length, then digits. Trailing zeros of
// the fraction do not affect the order. Negative zero equals zero.
func Compare(a, b Value) int {
	an := a.negative && !a.IsZero()
	bn := b.negative && !b.IsZero()
	switch {
	case an && !bn:
		return -1
	case !an && bn:
		return 1
	}
	c := compareMagnitude(a, b)
	if an {
		return -c
	}
	return c
}

func compareMagnitude(a, b Value) int {
	if len(a.integer) != len(b.integer) {
		if len(a.integer) < len(b.integer) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.integer, b.integer); c != 0 {
		return c
	}
	fa := strings.TrimRight(a.fraction, "0")
	fb := strings.TrimRight(b.fraction, "0")
	for i := 0; i < max(len(fa), len(fb)); i++ {
		da, db := digitAt(fa, i), digitAt(fb, i)
		if da != db {
			if da < db {
				return -1
			}
			return 1
		}
	}
	return 0
}

func digitAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return '0'
}

// roundHalfEven rounds the decimal digits intPart.fracPart to keep fraction digits.
func roundHalfEven(intPart, fracPart string, keep int) (string, string) {
	if len(fracPart) <= keep {
		return intPart, fracPart
	}

	next := fracPart[keep]
	rest := strings.Trim(fracPart[keep+1:], "0")
	kept := []byte(intPart + fracPart[:keep])

	last := kept[len(kept)-1]
	up := next > '5' || (next == '5' && (rest != "" || (last-'0')%2 == 1))
	if up {
		i := len(kept) - 1
		for ; i >= 0; i-- {
			if kept[i] == '9' {
				kept[i] = '0'
				continue
			}
			kept[i]++
			break
		}
		if i < 0 {
			kept = append([]byte{'1'}, kept...)
		}
	}

	split := len(kept) - keep
	return string(kept[:split]), string(kept[split:])
}

func trimLeadingZeros(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
