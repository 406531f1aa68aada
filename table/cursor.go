package table

import "fmt"

// Cursor is a logical position inside the tree: a leaf page number, a cell
// index within that leaf, and an end-of-table flag. It deliberately holds
// no page buffer, so a later GetPage call that allocates a new page (e.g.
// during an intervening Insert) can never invalidate an outstanding
// cursor.
type Cursor struct {
	tree       *BTree
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

// Start returns a cursor at the leftmost leaf's first cell. Key 0 is
// smaller than every valid key (valid ids are >= 1), so Find(0) always
// lands on the leftmost leaf at cell 0.
func (t *BTree) Start() (*Cursor, error) {
	cursor, err := t.Find(0)
	if err != nil {
		return nil, fmt.Errorf("table: Start: %w", err)
	}
	leaf, err := t.pager.GetPage(cursor.PageNum)
	if err != nil {
		return nil, err
	}
	cursor.EndOfTable = LeafNumCells(leaf) == 0
	return cursor, nil
}

// Advance moves the cursor to the next cell, following the next-leaf
// sibling pointer across leaf boundaries and setting EndOfTable once the
// chain runs out.
func (t *BTree) Advance(c *Cursor) error {
	leaf, err := t.pager.GetPage(c.PageNum)
	if err != nil {
		return fmt.Errorf("table: Advance: %w", err)
	}

	c.CellNum++
	if c.CellNum < LeafNumCells(leaf) {
		return nil
	}

	next := LeafNextLeaf(leaf)
	if next == 0 {
		c.EndOfTable = true
		return nil
	}
	c.PageNum = next
	c.CellNum = 0
	return nil
}

// Value returns the payload bytes for the cursor's current cell. The
// returned slice aliases the page buffer and is only valid until the next
// operation that loads a different page into the same slot.
func (t *BTree) Value(c *Cursor) ([]byte, error) {
	leaf, err := t.pager.GetPage(c.PageNum)
	if err != nil {
		return nil, fmt.Errorf("table: Value: %w", err)
	}
	return LeafValue(leaf, c.CellNum), nil
}

// Key returns the key at the cursor's current cell.
func (t *BTree) Key(c *Cursor) (uint32, error) {
	leaf, err := t.pager.GetPage(c.PageNum)
	if err != nil {
		return 0, fmt.Errorf("table: Key: %w", err)
	}
	return LeafKey(leaf, c.CellNum), nil
}
