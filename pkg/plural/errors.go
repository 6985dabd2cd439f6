package plural

import "errors"

var (
	ErrInvalidNumber    = errors.New("plural: invalid decimal number")
	ErrInvalidZoneValue = errors.New("plural: invalid zone value")
	ErrInvalidZone      = errors.New("plural: invalid zone")
)
