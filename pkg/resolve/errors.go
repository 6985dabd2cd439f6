package resolve

import "errors"

var (
	ErrInvalidConfig  = errors.New("resolve: invalid token configuration")
	ErrSourceMismatch = errors.New("resolve: source value does not match the template")
	ErrTargetMismatch = errors.New("resolve: converted value does not match the source text")
	ErrInvalidPreset  = errors.New("resolve: invalid preset")
	ErrUnknownToken   = errors.New("resolve: unknown preset token")
)
