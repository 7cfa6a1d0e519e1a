package renderer

import "errors"

// ErrInvalidConfig is returned when a camera or sampling configuration would
// produce degenerate geometry
var ErrInvalidConfig = errors.New("invalid render configuration")
