package index

import (
	"errors"
	"fmt"
)

var (
	ErrMissingLabel   = errors.New("missing label")
	ErrAmbiguousLabel = errors.New("ambiguous label")

	// ErrNotGrouped is returned by SliceLocs when the positions sharing an
	// outer level key are not contiguous.
	ErrNotGrouped = errors.New("hierarchical key positions are not contiguous")
)

// LabelError ties a lookup failure to the label that caused it.
// Match the kind with errors.Is(err, ErrMissingLabel) and friends.
type LabelError struct {
	Label Label
	Kind  error
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), FormatLabel(e.Label))
}

func (e *LabelError) Unwrap() error { return e.Kind }

func Missing(label Label) error {
	return &LabelError{Label: label, Kind: ErrMissingLabel}
}

func Ambiguous(label Label) error {
	return &LabelError{Label: label, Kind: ErrAmbiguousLabel}
}
