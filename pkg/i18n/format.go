package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/locmark/pkg/plural"
)

// LocaleFormat renders numbers and dates the way a locale writes them. It
// also decides the plural.Format a count is converted with before zone
// selection, so "1.50" and "1.5" select with the same precision as they are
// displayed. Immutable after creation.
type LocaleFormat struct {
	decimalSeparator  string
	thousandSeparator string
	currencySymbol    string
	currencyAfter     bool
	percentSymbol     string
	dateFormat        string
	timeFormat        string
	dateTimeFormat    string
	plural            plural.Format
}

// LocaleFormatOption configures a LocaleFormat.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat returns US English formatting changed by opts.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		decimalSeparator:  ".",
		thousandSeparator: ",",
		currencySymbol:    "$",
		percentSymbol:     "%",
		dateFormat:        "01/02/2006",
		timeFormat:        "3:04 PM",
		dateTimeFormat:    "01/02/2006 3:04 PM",
		plural:            plural.DefaultFormat,
	}
	for _, opt := range opts {
		opt(lf)
	}
	return lf
}

func WithDecimalSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) { lf.decimalSeparator = sep }
}

func WithThousandSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) { lf.thousandSeparator = sep }
}

// WithCurrency sets the currency symbol and whether it follows the amount.
func WithCurrency(symbol string, after bool) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.currencySymbol = symbol
		lf.currencyAfter = after
	}
}

func WithPercentSymbol(symbol string) LocaleFormatOption {
	return func(lf *LocaleFormat) { lf.percentSymbol = symbol }
}

// WithDateLayouts sets the Go time layouts for dates, times and both.
func WithDateLayouts(date, clock, dateTime string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateFormat, lf.timeFormat, lf.dateTimeFormat = date, clock, dateTime
	}
}

// WithPluralFormat sets how counts become plural values.
// Default: plural.DefaultFormat.
func WithPluralFormat(f plural.Format) LocaleFormatOption {
	return func(lf *LocaleFormat) { lf.plural = f }
}

var formats = map[string]func() *LocaleFormat{
	"en": func() *LocaleFormat { return NewLocaleFormat() },
	"en-GB": func() *LocaleFormat {
		return NewLocaleFormat(WithCurrency("£", false), WithDateLayouts("02/01/2006", "15:04", "02/01/2006 15:04"))
	},
	"de": func() *LocaleFormat {
		return NewLocaleFormat(WithDecimalSeparator(","), WithThousandSeparator("."), WithCurrency("€", true),
			WithDateLayouts("02.01.2006", "15:04", "02.01.2006 15:04"))
	},
	"fr": func() *LocaleFormat {
		return NewLocaleFormat(WithDecimalSeparator(","), WithThousandSeparator("\u202f"), WithCurrency("€", true),
			WithPercentSymbol("\u202f%"), WithDateLayouts("02/01/2006", "15:04", "02/01/2006 15:04"))
	},
	"es": func() *LocaleFormat {
		return NewLocaleFormat(WithDecimalSeparator(","), WithThousandSeparator("."), WithCurrency("€", true),
			WithDateLayouts("02/01/2006", "15:04", "02/01/2006 15:04"))
	},
	"pt": func() *LocaleFormat {
		return NewLocaleFormat(WithDecimalSeparator(","), WithThousandSeparator("."), WithCurrency("R$", false),
			WithDateLayouts("02/01/2006", "15:04", "02/01/2006 15:04"))
	},
	"pl": func() *LocaleFormat {
		return NewLocaleFormat(WithDecimalSeparator(","), WithThousandSeparator(" "), WithCurrency("zł", true),
			WithDateLayouts("02.01.2006", "15:04", "02.01.2006 15:04"))
	},
	"ru": func() *LocaleFormat {
		return NewLocaleFormat(WithDecimalSeparator(","), WithThousandSeparator(" "), WithCurrency("₽", true),
			WithDateLayouts("02.01.2006", "15:04", "02.01.2006 15:04"))
	},
	"uk": func() *LocaleFormat {
		return NewLocaleFormat(WithDecimalSeparator(","), WithThousandSeparator(" "), WithCurrency("₴", true),
			WithDateLayouts("02.01.2006", "15:04", "02.01.2006 15:04"))
	},
	"ja": func() *LocaleFormat {
		return NewLocaleFormat(WithCurrency("¥", false), WithDateLayouts("2006/01/02", "15:04", "2006/01/02 15:04"))
	},
	"zh": func() *LocaleFormat {
		return NewLocaleFormat(WithCurrency("¥", false), WithDateLayouts("2006-01-02", "15:04", "2006-01-02 15:04"))
	},
	"ko": func() *LocaleFormat {
		return NewLocaleFormat(WithCurrency("₩", false), WithDateLayouts("2006.01.02", "15:04", "2006.01.02 15:04"))
	},
	"ar": func() *LocaleFormat {
		return NewLocaleFormat(WithCurrency("SAR", true), WithDateLayouts("02/01/2006", "3:04 PM", "02/01/2006 3:04 PM"))
	},
}

// FormatFor returns the format of a BCP 47 tag: the exact region first
// ("en-GB"), then the base language, then US English.
func FormatFor(lang string) *LocaleFormat {
	tag, err := language.Parse(lang)
	if err != nil {
		return NewLocaleFormat()
	}
	base, _ := tag.Base()
	if region, conf := tag.Region(); conf == language.Exact {
		if f, ok := formats[base.String()+"-"+region.String()]; ok {
			return f()
		}
	}
	if f, ok := formats[base.String()]; ok {
		return f()
	}
	return NewLocaleFormat()
}

// PluralFormat returns the format counts are converted with.
func (lf *LocaleFormat) PluralFormat() plural.Format {
	return lf.plural
}

// Count converts a count argument to a plural value. Integers, floats,
// plural.Value and decimal strings are accepted.
func (lf *LocaleFormat) Count(v any) (plural.Value, error) {
	switch n := v.(type) {
	case plural.Value:
		return n, nil
	case int:
		return plural.FromInt(int64(n), lf.plural), nil
	case int32:
		return plural.FromInt(int64(n), lf.plural), nil
	case int64:
		return plural.FromInt(n, lf.plural), nil
	case uint:
		return plural.ParseValue(fmt.Sprint(n))
	case uint32:
		return plural.FromInt(int64(n), lf.plural), nil
	case uint64:
		return plural.ParseValue(fmt.Sprint(n))
	case float32:
		return plural.FromFloat(float64(n), lf.plural)
	case float64:
		return plural.FromFloat(n, lf.plural)
	case string:
		return plural.ParseValue(n)
	default:
		return plural.Value{}, fmt.Errorf("%w: %T", plural.ErrInvalidNumber, v)
	}
}

// FormatValue writes v with the locale's separators.
func (lf *LocaleFormat) FormatValue(v plural.Value) string {
	var b strings.Builder
	if v.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(lf.group(v.Integer()))
	if v.Fraction() != "" {
		b.WriteString(lf.decimalSeparator)
		b.WriteString(v.Fraction())
	}
	return b.String()
}

// FormatInt formats an integer with thousand separators.
func (lf *LocaleFormat) FormatInt(n int64) string {
	return lf.FormatValue(plural.FromInt(n, plural.Format{}))
}

// FormatNumber formats n with at most two fraction digits.
func (lf *LocaleFormat) FormatNumber(n float64) string {
	return lf.formatFloat(n, 0, 2)
}

// FormatCurrency formats amount with two fraction digits and the symbol.
func (lf *LocaleFormat) FormatCurrency(amount float64) string {
	num := lf.formatFloat(amount, 2, 2)
	sign := ""
	if strings.HasPrefix(num, "-") {
		sign, num = "-", num[1:]
	}
	if lf.currencyAfter {
		return sign + num + " " + lf.currencySymbol
	}
	return sign + lf.currencySymbol + num
}

// FormatPercent formats a ratio (0.5 is 50%) with at most one fraction digit.
func (lf *LocaleFormat) FormatPercent(n float64) string {
	return lf.formatFloat(n*100, 0, 1) + lf.percentSymbol
}

func (lf *LocaleFormat) FormatDate(t time.Time) string {
	return t.Format(lf.dateFormat)
}

func (lf *LocaleFormat) FormatTime(t time.Time) string {
	return t.Format(lf.timeFormat)
}

func (lf *LocaleFormat) FormatDateTime(t time.Time) string {
	return t.Format(lf.dateTimeFormat)
}

// Arg renders a placeholder argument.
func (lf *LocaleFormat) Arg(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case plural.Value:
		return lf.FormatValue(x)
	case int, int32, int64, uint, uint32, uint64:
		if n, err := lf.Count(x); err == nil {
			return lf.FormatValue(n)
		}
	case float32:
		return lf.FormatNumber(float64(x))
	case float64:
		return lf.FormatNumber(x)
	case time.Time:
		return lf.FormatDateTime(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func (lf *LocaleFormat) formatFloat(x float64, minDigits, maxDigits int) string {
	v, err := plural.FromFloat(x, plural.Format{MinFractionDigits: minDigits, MaxFractionDigits: maxDigits})
	if err != nil {
		return fmt.Sprint(x)
	}
	return lf.FormatValue(v)
}

// group inserts thousand separators into a digit string.
func (lf *LocaleFormat) group(digits string) string {
	if len(digits) <= 3 || lf.thousandSeparator == "" {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(lf.thousandSeparator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
