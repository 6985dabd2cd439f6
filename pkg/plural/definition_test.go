package plural_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/locmark/pkg/plural"
)

func intValue(n int64) plural.Value {
	return plural.FromInt(n, plural.DefaultFormat)
}

func TestParseZoneValue(t *testing.T) {
	t.Parallel()

	t.Run("number", func(t *testing.T) {
		t.Parallel()
		zv, err := plural.ParseZoneValue("1")
		require.NoError(t, err)
		require.IsType(t, plural.Number{}, zv)
	})

	t.Run("int interval", func(t *testing.T) {
		t.Parallel()
		zv, err := plural.ParseZoneValue("2→4")
		require.NoError(t, err)
		r, ok := zv.(plural.IntervalOfInts)
		require.True(t, ok)
		assert.True(t, r.MatchInt(intValue(3)))
		assert.False(t, r.MatchInt(intValue(5)))
	})

	t.Run("open-ended int interval", func(t *testing.T) {
		t.Parallel()
		zv, err := plural.ParseZoneValue("→5")
		require.NoError(t, err)
		assert.True(t, zv.MatchInt(intValue(-100)))
		assert.False(t, zv.MatchInt(intValue(6)))
	})

	t.Run("float interval with mixed brackets", func(t *testing.T) {
		t.Parallel()
		zv, err := plural.ParseZoneValue("[1→2[")
		require.NoError(t, err)
		require.IsType(t, plural.IntervalOfFloats{}, zv)
		assert.True(t, zv.MatchFloat(plural.MustParseValue("1.0"), nil))
		assert.True(t, zv.MatchFloat(plural.MustParseValue("1.99"), nil))
		assert.False(t, zv.MatchFloat(plural.MustParseValue("2.0"), nil))
		assert.False(t, zv.MatchInt(intValue(1)))
	})

	t.Run("glob", func(t *testing.T) {
		t.Parallel()
		zv, err := plural.ParseZoneValue("^*[^1][2→4]$")
		require.NoError(t, err)
		require.IsType(t, plural.Glob{}, zv)
		assert.True(t, zv.MatchInt(intValue(22)))
		assert.True(t, zv.MatchInt(intValue(104)))
		assert.False(t, zv.MatchInt(intValue(12)))
		assert.False(t, zv.MatchInt(intValue(2)))
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		_, err := plural.ParseZoneValue("abc")
		require.ErrorIs(t, err, plural.ErrInvalidZoneValue)
		_, err = plural.ParseZoneValue("")
		require.ErrorIs(t, err, plural.ErrInvalidZoneValue)
		_, err = plural.ParseZoneValue("[12")
		require.ErrorIs(t, err, plural.ErrInvalidZoneValue)
	})
}

func TestCompileGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		value   string
		want    bool
	}{
		{pattern: "*", value: "5", want: true},
		{pattern: "*", value: "1.5", want: true},
		{pattern: "*.", value: "1.5", want: true},
		{pattern: "*.", value: "15", want: false},
		{pattern: "{*[^1]}1", value: "1", want: true},
		{pattern: "{*[^1]}1", value: "21", want: true},
		{pattern: "{*[^1]}1", value: "11", want: false},
		{pattern: "{*[^1]}1", value: "111", want: false},
		{pattern: "{*[^1]}1", value: "1.5", want: false},
		{pattern: "{*[^1]}1", value: "21.3", want: false},
		{pattern: "[2→4]", value: "2.5", want: false},
		{pattern: "1?", value: "15", want: true},
		{pattern: "1?", value: "1", want: false},
		{pattern: "*.5", value: "2.5", want: true},
		{pattern: "*.5", value: "2.25", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.value, func(t *testing.T) {
			t.Parallel()
			g, err := plural.CompileGlob(tt.pattern)
			require.NoError(t, err)
			v := plural.MustParseValue(tt.value)
			var got bool
			if v.IsInteger() {
				got = g.MatchInt(v)
			} else {
				got = g.MatchFloat(v, nil)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("sorts zones by optionality", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("(1)(2→4:^*[^1][2→4]$)?(*)")
		zones := def.Zones()
		require.Len(t, zones, 3)
		assert.Equal(t, 1, zones[0].Index)
		assert.Equal(t, 1, zones[0].Optionality)
		assert.Equal(t, 0, zones[1].Index)
		assert.Equal(t, 2, zones[2].Index)
		assert.Len(t, zones[0].Values, 2)
	})

	t.Run("reads priority and optionality markers", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("(1)↓↓??(*)")
		zones := def.Zones()
		require.Len(t, zones, 2)
		assert.Equal(t, 0, zones[0].Index)
		assert.Equal(t, 2, zones[0].Priority)
		assert.Equal(t, 2, zones[0].Optionality)
	})

	t.Run("skips malformed fragments", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("(1:abc)x(*)")
		zones := def.Zones()
		require.Len(t, zones, 2)
		assert.Len(t, zones[0].Values, 1)
		assert.Equal(t, 0, def.IndexOfZone(intValue(1), 2))
		assert.Equal(t, 1, def.IndexOfZone(intValue(5), 2))
	})

	t.Run("unclosed zone stops parsing", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("(1)(2")
		require.Len(t, def.Zones(), 1)
		assert.Equal(t, "(1)(2", def.Rule())
	})
}

func TestDefinition_IndexOfZone(t *testing.T) {
	t.Parallel()

	t.Run("one and other", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("(1)(*)")
		assert.Equal(t, 0, def.IndexOfZone(intValue(1), 2))
		assert.Equal(t, 1, def.IndexOfZone(intValue(2), 2))
		assert.Equal(t, 1, def.IndexOfZone(intValue(0), 2))
	})

	t.Run("all zones supplied", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("(1)(2→4:^*[^1][2→4]$)?(*)")
		assert.Equal(t, 0, def.IndexOfZone(intValue(1), 3))
		assert.Equal(t, 1, def.IndexOfZone(intValue(3), 3))
		assert.Equal(t, 1, def.IndexOfZone(intValue(22), 3))
		assert.Equal(t, 2, def.IndexOfZone(intValue(5), 3))
		assert.Equal(t, 2, def.IndexOfZone(intValue(12), 3))
	})

	t.Run("prunes optional zone when template has fewer alternatives", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("(1)(2→4:^*[^1][2→4]$)?(*)")
		assert.Equal(t, 0, def.IndexOfZone(intValue(1), 2))
		assert.Equal(t, 1, def.IndexOfZone(intValue(2), 2))
		assert.Equal(t, 1, def.IndexOfZone(intValue(5), 2))
	})

	t.Run("priority decrease loses to plain zone", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("(*)↓(1)")
		assert.Equal(t, 1, def.IndexOfZone(intValue(1), 2))
		assert.Equal(t, 0, def.IndexOfZone(intValue(2), 2))
	})

	t.Run("no match defaults to last alternative", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("(1)(2)")
		assert.Equal(t, 2, def.IndexOfZone(intValue(9), 3))
	})

	t.Run("empty definition picks last alternative", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("")
		assert.Equal(t, 2, def.IndexOfZone(intValue(1), 3))
	})

	t.Run("match all picks first alternative", func(t *testing.T) {
		t.Parallel()
		def := plural.MatchAll()
		assert.Equal(t, 0, def.IndexOfZone(intValue(7), 3))
	})

	t.Run("zero alternatives", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0, plural.Parse("(1)(*)").IndexOfZone(intValue(1), 0))
	})

	t.Run("fractional values", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("(1)(*.)(*)")
		assert.Equal(t, 0, def.IndexOfZone(intValue(1), 3))
		assert.Equal(t, 1, def.IndexOfZone(plural.MustParseValue("1.5"), 3))
		assert.Equal(t, 0, def.IndexOfZone(plural.MustParseValue("1.0"), 3))
	})

	t.Run("integer globs do not match fractions", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse(plural.EastSlavicRule)
		assert.Equal(t, 0, def.IndexOfZone(intValue(21), 3))
		assert.Equal(t, 2, def.IndexOfZone(plural.MustParseValue("1.5"), 3))
		assert.Equal(t, 2, def.IndexOfZone(plural.MustParseValue("21.3"), 3))
		assert.Equal(t, 2, def.IndexOfZone(plural.MustParseValue("2.5"), 3))
	})

	t.Run("float intervals do not match integers", func(t *testing.T) {
		t.Parallel()
		def := plural.Parse("([0→2[)(*)")
		assert.Equal(t, 0, def.IndexOfZone(plural.MustParseValue("1.5"), 2))
		assert.Equal(t, 1, def.IndexOfZone(plural.MustParseValue("2.0"), 2))
		assert.Equal(t, 1, def.IndexOfZone(intValue(1), 2))
	})

	t.Run("precision for fractional numbers", func(t *testing.T) {
		t.Parallel()
		v := plural.MustParseValue("1.005")
		assert.Equal(t, 1, plural.Parse("(1)(*)").IndexOfZone(v, 2))
		assert.Equal(t, 0, plural.Parse("(1)(*)", plural.WithPrecision(0.01)).IndexOfZone(v, 2))
	})
}
