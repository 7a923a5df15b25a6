package block

import "errors"

var (
	// ErrInconsistentIndex signals a programming error: items that are not
	// part of ref_items, or blocks that disagree on ref_items.
	ErrInconsistentIndex = errors.New("inconsistent index")

	// ErrDtypeMismatch is returned by the low level merge and by in-place
	// writes when dtypes differ. Mixed dtypes go through manager promotion.
	ErrDtypeMismatch = errors.New("dtype mismatch")

	ErrShapeMismatch = errors.New("shape mismatch")
)
