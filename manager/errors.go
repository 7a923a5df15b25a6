package manager

import "errors"

var (
	// ErrGap is returned when a full matrix is requested while some axis 0
	// labels have no block behind them.
	ErrGap = errors.New("label has no block")

	ErrAxis = errors.New("invalid axis")

	ErrOutOfRange = errors.New("position out of range")
)
