package table

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"bptreedb/column"
	"bptreedb/pager"
)

// Database is the facade exposed to the shell: it owns a Pager and the
// tree built on top of it, and is the only type outside this package that
// callers need to construct.
type Database struct {
	pager *pager.Pager
	tree  *BTree
	log   *logrus.Entry
}

// Open opens path through fs into a ready-to-use Database, initializing a
// fresh empty root leaf if the file is new.
func Open(fs afero.Fs, path string) (*Database, error) {
	p, err := pager.Open(fs, path)
	if err != nil {
		return nil, fmt.Errorf("table: Open: %w", err)
	}
	tree, err := NewBTree(p)
	if err != nil {
		return nil, fmt.Errorf("table: Open: %w", err)
	}
	return &Database{pager: p, tree: tree, log: logrus.WithField("component", "database")}, nil
}

// OpenFile opens path on the real filesystem.
func OpenFile(path string) (*Database, error) {
	return Open(afero.NewOsFs(), path)
}

// Insert serializes row and inserts it at row.ID. Returns ErrDuplicateKey
// if the id already exists.
func (d *Database) Insert(row Row) error {
	var buf [column.RowSize]byte
	if err := SerializeRow(row, buf[:]); err != nil {
		return fmt.Errorf("table: Insert: %w", err)
	}
	return d.tree.Insert(row.ID, buf[:])
}

// Find returns a cursor positioned at key, or at its would-be insertion
// point if key is absent.
func (d *Database) Find(key uint32) (*Cursor, error) {
	return d.tree.Find(key)
}

// Start returns a cursor at the first row in key order, for a full
// ordered scan.
func (d *Database) Start() (*Cursor, error) {
	return d.tree.Start()
}

// Advance moves cursor to the next row in key order.
func (d *Database) Advance(cursor *Cursor) error {
	return d.tree.Advance(cursor)
}

// Value decodes the row at cursor's current position.
func (d *Database) Value(cursor *Cursor) (Row, error) {
	raw, err := d.tree.Value(cursor)
	if err != nil {
		return Row{}, fmt.Errorf("table: Value: %w", err)
	}
	return DeserializeRow(raw)
}

// EndOfTable reports whether cursor has run past the last row.
func (d *Database) EndOfTable(cursor *Cursor) bool {
	return cursor.EndOfTable
}

// PrintTree writes a diagnostic description of the tree's shape to w.
func (d *Database) PrintTree(w io.Writer) error {
	return d.tree.PrintTree(w)
}

// Close flushes every loaded page and releases the backing file. Callers
// must not use the Database after Close returns, successfully or not.
func (d *Database) Close() error {
	d.log.Debug("closing database")
	return d.pager.Close()
}
