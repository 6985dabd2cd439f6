package token

import "errors"

var (
	ErrEmptyToken        = errors.New("token: token string cannot be empty")
	ErrOverlappingTokens = errors.New("token: token strings overlap")
	ErrUnclosedToken     = errors.New("token: opening token has no closing token")
)

// errNoMatch is returned by Scanner.FindPair when the left token does not occur.
var errNoMatch = errors.New("token: no match")
