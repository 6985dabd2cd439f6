package i18n_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/locmark/pkg/i18n"
	"github.com/dmitrymomot/locmark/pkg/plural"
)

func TestLocaleFormat_Numbers(t *testing.T) {
	t.Parallel()

	en := i18n.FormatFor("en-US")
	de := i18n.FormatFor("de-DE")
	fr := i18n.FormatFor("fr")
	ru := i18n.FormatFor("ru")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "integer", got: en.FormatInt(-1234567), want: "-1,234,567"},
		{name: "small integer", got: en.FormatInt(999), want: "999"},
		{name: "number", got: de.FormatNumber(1234.5), want: "1.234,5"},
		{name: "number rounds half even", got: en.FormatNumber(0.125), want: "0.12"},
		{name: "whole number", got: en.FormatNumber(3), want: "3"},
		{name: "currency before", got: i18n.FormatFor("en-GB").FormatCurrency(12.5), want: "£12.50"},
		{name: "negative currency", got: en.FormatCurrency(-5.5), want: "-$5.50"},
		{name: "currency after", got: ru.FormatCurrency(1234.5), want: "1 234,50 ₽"},
		{name: "percent", got: fr.FormatPercent(0.255), want: "25,5\u202f%"},
		{name: "narrow no-break space groups", got: fr.FormatNumber(1234.5), want: "1\u202f234,5"},
		{name: "value keeps trailing zeros", got: de.FormatValue(plural.MustParseValue("1234.50")), want: "1.234,50"},
		{name: "unknown language", got: i18n.FormatFor("xx-not-a-tag!").FormatNumber(1000.25), want: "1,000.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLocaleFormat_Dates(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, time.March, 7, 14, 5, 0, 0, time.UTC)

	assert.Equal(t, "03/07/2026", i18n.FormatFor("en").FormatDate(at))
	assert.Equal(t, "2:05 PM", i18n.FormatFor("en").FormatTime(at))
	assert.Equal(t, "07.03.2026 14:05", i18n.FormatFor("de").FormatDateTime(at))
	assert.Equal(t, "2026/03/07", i18n.FormatFor("ja").FormatDate(at))
}

func TestLocaleFormat_Count(t *testing.T) {
	t.Parallel()

	lf := i18n.NewLocaleFormat(i18n.WithPluralFormat(plural.Format{MinFractionDigits: 1, MaxFractionDigits: 2}))

	v, err := lf.Count(3)
	require.NoError(t, err)
	assert.Equal(t, "3.0", v.String())

	v, err = lf.Count(1.256)
	require.NoError(t, err)
	assert.Equal(t, "1.26", v.String())

	v, err = lf.Count("1.50")
	require.NoError(t, err)
	assert.Equal(t, "50", v.Fraction())

	_, err = lf.Count(struct{}{})
	require.ErrorIs(t, err, plural.ErrInvalidNumber)
}

func TestLocaleFormat_Arg(t *testing.T) {
	t.Parallel()

	de := i18n.FormatFor("de")
	assert.Equal(t, "text", de.Arg("text"))
	assert.Equal(t, "12.000", de.Arg(12000))
	assert.Equal(t, "0,5", de.Arg(0.5))
	assert.Equal(t, "true", de.Arg(true))
}
