package table

import (
	"errors"

	"bptreedb/pager"
)

var (
	// ErrDuplicateKey is returned by Insert when the key already exists.
	// Not fatal; state is left unmutated.
	ErrDuplicateKey = errors.New("table: duplicate key")

	// ErrInternalSplitUnsupported is returned when an insert would require
	// splitting an internal node. Internal-node splitting is an explicit
	// non-goal of this engine.
	ErrInternalSplitUnsupported = errors.New("table: internal node split is not supported")

	// ErrPagerFull is re-exported from pager for convenience; it surfaces
	// when an operation needs a page number at or beyond the pager's
	// TableMaxPages limit.
	ErrPagerFull = pager.ErrPagerFull
)
