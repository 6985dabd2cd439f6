package plural

import (
	"log/slog"
	"math/big"
	"sort"
	"strings"

	"github.com/dmitrymomot/locmark/pkg/logger"
)

const (
	priorityMarker    = "↓"
	optionalityMarker = "?"
)

// Zone is one alternative of a plurality definition.
type Zone struct {
	Values []ZoneValue
	// Index is the position of the alternative in the template.
	Index int
	// Optionality is 0 for required zones; higher levels are dropped first.
	Optionality int
	// Priority is the priority decrease level; 0 wins over higher levels.
	Priority int
}

// Matches reports whether any predicate of the zone accepts the value.
func (z Zone) Matches(v Value, precision *big.Rat) bool {
	for _, zv := range z.Values {
		if v.IsInteger() {
			if zv.MatchInt(v) {
				return true
			}
			continue
		}
		if zv.MatchFloat(v, precision) {
			return true
		}
	}
	return false
}

// Definition selects template alternatives for plural values.
// It is immutable after construction and safe for concurrent use.
type Definition struct {
	logger    *slog.Logger
	precision *big.Rat
	rule      string
	zones     []Zone
	matchAll  bool
}

// Option configures a Definition.
type Option func(*Definition)

// WithLogger sets the logger receiving parse and selection diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Definition) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithPrecision sets the tolerance used when fractional values are compared
// with exact numbers. Default: 0 (exact).
func WithPrecision(p float64) Option {
	return func(d *Definition) {
		if p > 0 {
			d.precision = new(big.Rat).SetFloat64(p)
		}
	}
}

func newDefinition(rule string, opts []Option) *Definition {
	d := &Definition{
		rule:   rule,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// MatchAll returns a definition that always selects the first alternative.
func MatchAll(opts ...Option) *Definition {
	d := newDefinition("", opts)
	d.matchAll = true
	return d
}

// Parse builds a definition from a rule such as "(1)(2→4:^*[^1][2→4]$)?(*)".
// Each "(content)" is a zone, optionally followed by '↓' priority markers and
// '?' optionality markers. Malformed fragments are logged and skipped; the
// definition is built from whatever parsed.
func Parse(rule string, opts ...Option) *Definition {
	d := newDefinition(rule, opts)

	index := 0
	rest := rule
	for rest != "" {
		if rest[0] != '(' {
			next := strings.IndexByte(rest, '(')
			skipped := rest
			if next >= 0 {
				skipped = rest[:next]
			}
			d.logger.Warn("plural: skipping malformed rule text",
				slog.String("rule", rule),
				slog.String("fragment", skipped),
			)
			if next < 0 {
				break
			}
			rest = rest[next:]
			continue
		}

		end := strings.IndexByte(rest, ')')
		if end < 0 {
			d.logger.Warn("plural: unclosed zone",
				slog.String("rule", rule),
				slog.String("fragment", rest),
			)
			break
		}
		content := rest[1:end]
		rest = rest[end+1:]

		zone := Zone{Index: index}
		index++
	markers:
		for {
			switch {
			case strings.HasPrefix(rest, priorityMarker):
				zone.Priority++
				rest = rest[len(priorityMarker):]
			case strings.HasPrefix(rest, optionalityMarker):
				zone.Optionality++
				rest = rest[len(optionalityMarker):]
			default:
				break markers
			}
		}

		for _, spec := range strings.Split(content, ":") {
			zv, err := ParseZoneValue(spec)
			if err != nil {
				d.logger.Warn("plural: skipping malformed zone value",
					slog.String("rule", rule),
					slog.Int("zone", zone.Index),
					slog.String("error", err.Error()),
				)
				continue
			}
			zone.Values = append(zone.Values, zv)
		}
		d.zones = append(d.zones, zone)
	}

	sort.SliceStable(d.zones, func(i, j int) bool {
		return d.zones[i].Optionality > d.zones[j].Optionality
	})
	return d
}

// Rule returns the source rule string.
func (d *Definition) Rule() string {
	return d.rule
}

// Zones returns the zones in selection order (most optional first).
func (d *Definition) Zones() []Zone {
	out := make([]Zone, len(d.zones))
	copy(out, d.zones)
	return out
}

// IndexOfZone returns the template alternative to use for v when the template
// supplies zoneCount alternatives.
//
// When the definition has more zones than alternatives, the most optional zones
// are dropped first. Among the matching zones the one with the lowest priority
// level wins, ties going to the lowest index. Without a match the last
// alternative is used.
func (d *Definition) IndexOfZone(v Value, zoneCount int) int {
	if zoneCount <= 0 || d.matchAll {
		return 0
	}
	if len(d.zones) == 0 {
		return zoneCount - 1
	}

	zones := d.zones
	var dropped []Zone
	if extra := len(zones) - zoneCount; extra > 0 {
		dropped = zones[:extra]
		zones = zones[extra:]
		for _, z := range dropped {
			if z.Optionality == 0 {
				d.logger.Warn("plural: dropping required zone",
					slog.String("rule", d.rule),
					slog.Int("zone", z.Index),
					slog.Int("alternatives", zoneCount),
				)
			}
		}
	}

	best := -1
	for i, z := range zones {
		if !z.Matches(v, d.precision) {
			continue
		}
		if best < 0 || z.Priority < zones[best].Priority ||
			(z.Priority == zones[best].Priority && z.Index < zones[best].Index) {
			best = i
		}
	}
	if best < 0 {
		return zoneCount - 1
	}

	index := zones[best].Index
	for _, z := range dropped {
		if z.Index < zones[best].Index {
			index--
		}
	}
	return min(index, zoneCount-1)
}
