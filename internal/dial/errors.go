package dial

import "errors"

// Configuration errors returned by New and Config.Validate.
var (
	ErrMissingColor  = errors.New("missing dial color")
	ErrInvalidColor  = errors.New("invalid dial color")
	ErrInvalidLayout = errors.New("invalid dial layout")
	ErrNoLabels      = errors.New("no label source")
)
