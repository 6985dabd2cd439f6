package tree

import "errors"

var (
	ErrTokenShape = errors.New("tree: token has the wrong shape for its kind")
	ErrNoTokens   = errors.New("tree: configuration has no tokens")
)
