package shape

import "errors"

var ErrRender = errors.New("shape: render failed")
