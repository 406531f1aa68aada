// Package column fixes the shape of the single row type this engine stores:
// one identifier plus two bounded text columns. The storage engine itself
// (pager, node codec, B+ tree) never imports this package — it only ever
// sees a payload of RowSize opaque bytes.
package column

const (
	// IDSize is the width of the numeric identifier column.
	IDSize = 4

	// UsernameSize is the maximum number of characters a username may hold.
	UsernameSize = 32
	// EmailSize is the maximum number of characters an email may hold.
	EmailSize = 255

	// UsernameStorageSize reserves one extra byte for a trailing NUL, the
	// way the original tutorial's fixed-size C string columns do.
	UsernameStorageSize = UsernameSize + 1
	// EmailStorageSize reserves one extra byte for a trailing NUL.
	EmailStorageSize = EmailSize + 1

	// IDOffset, UsernameOffset, EmailOffset lay the three columns out
	// back-to-back inside a row's serialized bytes.
	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameStorageSize

	// RowSize is the total serialized width of one row: 4 + 33 + 256 = 293.
	RowSize = EmailOffset + EmailStorageSize
)
