package codec

import "errors"

var (
	ErrInvalidMagic       = errors.New("invalid magic")
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrUnsupportedValue is returned for labels or object cells of a Go
	// type the format has no tag for.
	ErrUnsupportedValue = errors.New("unsupported value")

	ErrCorrupt = errors.New("corrupt payload")
)
