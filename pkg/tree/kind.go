package tree

import "fmt"

// Kind identifies what the engine does with a span.
type Kind uint8

const (
	// SimpleSource spans are replaced by a transform of the source value.
	SimpleSource Kind = iota + 1
	// SimpleReturn spans are replaced by a transform of the target value.
	SimpleReturn
	// Ordered spans are the alternatives of an ordered choice.
	Ordered
	// Plural spans are the zones of a plural group.
	Plural
	// Attributes spans change styling of their range and never the text.
	Attributes
	// Dictionary spans are the values of a keyed choice.
	Dictionary
)

var kindNames = map[Kind]string{
	SimpleSource: "source",
	SimpleReturn: "return",
	Ordered:      "ordered",
	Plural:       "plural",
	Attributes:   "attributes",
	Dictionary:   "dictionary",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsChoice reports whether exactly one span of a group survives resolution.
func (k Kind) IsChoice() bool {
	return k == Ordered || k == Plural || k == Dictionary
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("tree: unknown kind %d", uint8(k))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("tree: unknown kind %q", string(b))
}
