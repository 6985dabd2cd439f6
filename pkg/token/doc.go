// Package token defines the delimiter tokens of the template grammar and the
// escape-aware scanner that locates them.
//
// A template marks replaceable regions with literal tokens. A one-word token
// wraps its content between a left and a right string (which may be the same,
// as in |name|). A multiple-words token additionally splits its content into
// alternatives with an interior string, as in <house:houses>. One global escape
// token suppresses any token occurrence it immediately precedes.
//
// # Tokens
//
//	bold := token.OneWord("*", "*")
//	choice := token.MultipleWords("<", ":", ">")
//
// Tokens are comparable values and can be used as map keys.
//
// # Validation
//
// A token set is unambiguous when no non-empty prefix of one token string is a
// suffix of another. [ValidateSet] checks this invariant once, at configuration
// time:
//
//	if err := token.ValidateSet(`\`, bold, choice); err != nil {
//		return err // errors.Is(err, token.ErrOverlappingTokens)
//	}
//
// # Scanning
//
// [Scanner] finds the first unescaped occurrence of a token string. A match is
// escaped iff it is immediately preceded by an odd number of consecutive escape
// tokens. Matches must start and end on grapheme-cluster boundaries, so a token
// never splits a user-perceived character:
//
//	s := token.NewScanner(`the \|replaced\| |name|`, `\`)
//	outer, inner, err := s.FindPair("|", "|", 0)
//	// outer spans "|name|", inner spans "name"
package token
