package svg

import "errors"

var (
	// ErrSourceNotFound means no byte stream could be resolved for the
	// requested floor identifier.
	ErrSourceNotFound = errors.New("floorplan source not found")

	// ErrMalformedSource means the root svg element could not be located
	// within the bounded header prefix.
	ErrMalformedSource = errors.New("malformed floorplan source")
)
