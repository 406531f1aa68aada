package table

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"bptreedb/column"
)

// Row is the fixed-schema payload this engine stores: an identifier plus
// two bounded text columns. The B+ tree and Pager never see this type —
// they operate on the serialized column.RowSize byte slice it produces.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// Validate rejects rows whose text columns exceed the schema's bounds.
// Strings of exactly column.UsernameSize / column.EmailSize characters are
// accepted; one byte longer is rejected.
func (r Row) Validate() error {
	if len(r.Username) > column.UsernameSize {
		return fmt.Errorf("table: username %q exceeds %d bytes", r.Username, column.UsernameSize)
	}
	if len(r.Email) > column.EmailSize {
		return fmt.Errorf("table: email %q exceeds %d bytes", r.Email, column.EmailSize)
	}
	return nil
}

// SerializeRow writes r into dst, which must be exactly column.RowSize bytes.
func SerializeRow(r Row, dst []byte) error {
	if len(dst) != column.RowSize {
		return fmt.Errorf("table: SerializeRow: dst length %d, expected %d", len(dst), column.RowSize)
	}
	if err := r.Validate(); err != nil {
		return err
	}

	for i := range dst {
		dst[i] = 0
	}

	binary.LittleEndian.PutUint32(dst[column.IDOffset:column.IDOffset+column.IDSize], r.ID)
	copy(dst[column.UsernameOffset:column.UsernameOffset+column.UsernameStorageSize], r.Username)
	copy(dst[column.EmailOffset:column.EmailOffset+column.EmailStorageSize], r.Email)
	return nil
}

// DeserializeRow is the inverse of SerializeRow.
func DeserializeRow(src []byte) (Row, error) {
	if len(src) != column.RowSize {
		return Row{}, fmt.Errorf("table: DeserializeRow: src length %d, expected %d", len(src), column.RowSize)
	}

	id := binary.LittleEndian.Uint32(src[column.IDOffset : column.IDOffset+column.IDSize])
	username := nulTerminated(src[column.UsernameOffset : column.UsernameOffset+column.UsernameStorageSize])
	email := nulTerminated(src[column.EmailOffset : column.EmailOffset+column.EmailStorageSize])

	return Row{ID: id, Username: username, Email: email}, nil
}

func nulTerminated(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
