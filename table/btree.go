// Package table implements the B+ tree that sits on top of the pager: key
// search, insertion with leaf splitting and root promotion, and
// cursor-based sequential iteration. The tree is opaque-payload: it knows
// nothing about Row, only that every cell holds column.RowSize bytes.
package table

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"bptreedb/pager"
)

// BTree is the on-disk B+ tree. The root is always page 0 for the lifetime
// of the database (spec invariant); BTree itself only remembers that page
// number for clarity at call sites.
type BTree struct {
	pager       *pager.Pager
	rootPageNum uint32
	log         *logrus.Entry
}

// RootPageNum is always 0. See NewBTree.
const RootPageNum uint32 = 0

// NewBTree wraps an existing pager. If the pager has no pages yet, it
// allocates page 0 and initializes it as an empty root leaf; otherwise it
// assumes page 0 already holds a valid root.
func NewBTree(p *pager.Pager) (*BTree, error) {
	log := logrus.WithField("component", "btree")
	t := &BTree{pager: p, rootPageNum: RootPageNum, log: log}

	if p.NumPages() == 0 {
		root, err := p.GetPage(RootPageNum)
		if err != nil {
			return nil, fmt.Errorf("table: NewBTree: %w", err)
		}
		InitializeLeafNode(root)
		SetRoot(root, true)
		log.Debug("initialized empty root leaf")
	}
	return t, nil
}

// Find descends from the root and returns a cursor pointing either at the
// cell matching key, or at the index where key would be inserted.
func (t *BTree) Find(key uint32) (*Cursor, error) {
	pageNum := t.rootPageNum
	for {
		page, err := t.pager.GetPage(pageNum)
		if err != nil {
			return nil, fmt.Errorf("table: Find(%d): %w", key, err)
		}
		if NodeType(page) == NodeTypeLeaf {
			idx := leafFindCell(page, key)
			return &Cursor{tree: t, PageNum: pageNum, CellNum: idx}, nil
		}
		idx := internalFindChild(page, key)
		pageNum = InternalChild(page, idx)
	}
}

// leafFindCell binary searches a leaf's cells for the first cell whose key
// is >= key, i.e. either the matching cell or the insertion point.
func leafFindCell(page *pager.Page, key uint32) uint32 {
	numCells := int(LeafNumCells(page))
	idx := sort.Search(numCells, func(i int) bool {
		return LeafKey(page, uint32(i)) >= key
	})
	return uint32(idx)
}

// internalFindChild binary searches an internal node's separator keys for
// the smallest index i such that key_i >= key. Ties descend left, which is
// exactly what a >= comparison yields.
func internalFindChild(page *pager.Page, key uint32) uint32 {
	numKeys := int(InternalNumKeys(page))
	idx := sort.Search(numKeys, func(i int) bool {
		return InternalKey(page, uint32(i)) >= key
	})
	return uint32(idx)
}

// Insert adds key/payload into the tree. payload must be exactly
// column.RowSize bytes. Returns ErrDuplicateKey if key already exists.
func (t *BTree) Insert(key uint32, payload []byte) error {
	cursor, err := t.Find(key)
	if err != nil {
		return err
	}

	leaf, err := t.pager.GetPage(cursor.PageNum)
	if err != nil {
		return fmt.Errorf("table: Insert(%d): %w", key, err)
	}
	if cursor.CellNum < LeafNumCells(leaf) && LeafKey(leaf, cursor.CellNum) == key {
		return fmt.Errorf("table: Insert(%d): %w", key, ErrDuplicateKey)
	}

	return t.leafInsert(cursor, key, payload)
}

// leafInsert inserts key/payload at cursor's position, splitting the leaf
// first if it is already full.
func (t *BTree) leafInsert(cursor *Cursor, key uint32, payload []byte) error {
	leaf, err := t.pager.GetPage(cursor.PageNum)
	if err != nil {
		return err
	}

	numCells := LeafNumCells(leaf)
	if numCells < LeafMaxCells {
		for i := numCells; i > cursor.CellNum; i-- {
			CopyLeafCell(leaf, i, leaf, i-1)
		}
		WriteLeafCell(leaf, cursor.CellNum, key, payload)
		SetLeafNumCells(leaf, numCells+1)
		return nil
	}

	return t.leafSplitAndInsert(cursor, key, payload)
}

// leafSplitAndInsert implements spec.md §4.4: allocate a sibling leaf,
// splice it into the next-leaf chain, redistribute the LeafMaxCells+1
// cells (old cells plus the incoming one) across the two leaves, and
// promote the split into the parent (or create a new root).
func (t *BTree) leafSplitAndInsert(cursor *Cursor, key uint32, payload []byte) error {
	oldPageNum := cursor.PageNum
	oldPage, err := t.pager.GetPage(oldPageNum)
	if err != nil {
		return err
	}
	oldMax := MaxKey(oldPage)
	wasRoot := IsRoot(oldPage)
	oldParent := ParentPageNum(oldPage)
	oldNext := LeafNextLeaf(oldPage)

	newPageNum, err := t.pager.AllocatePage()
	if err != nil {
		return fmt.Errorf("table: leafSplitAndInsert: %w", err)
	}
	newPage, err := t.pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	InitializeLeafNode(newPage)
	SetParentPageNum(newPage, oldParent)
	SetLeafNextLeaf(newPage, oldNext)
	SetLeafNextLeaf(oldPage, newPageNum)

	for i := int(LeafMaxCells); i >= 0; i-- {
		idx := uint32(i)
		var dest *pager.Page
		if idx >= LeafLeftSplitCount {
			dest = newPage
		} else {
			dest = oldPage
		}
		destIdx := idx % LeafLeftSplitCount

		switch {
		case idx == cursor.CellNum:
			WriteLeafCell(dest, destIdx, key, payload)
		case idx > cursor.CellNum:
			CopyLeafCell(dest, destIdx, oldPage, idx-1)
		default:
			CopyLeafCell(dest, destIdx, oldPage, idx)
		}
	}
	SetLeafNumCells(oldPage, LeafLeftSplitCount)
	SetLeafNumCells(newPage, LeafRightSplitCount)

	t.log.WithFields(logrus.Fields{"old_page": oldPageNum, "new_page": newPageNum}).Debug("split leaf")

	if wasRoot {
		return t.createNewRoot(newPageNum)
	}

	newMax := MaxKey(oldPage)
	if err := t.updateInternalNodeKey(oldParent, oldMax, newMax); err != nil {
		return err
	}
	return t.internalInsert(oldParent, newPageNum)
}

// updateInternalNodeKey finds the parent cell whose separator equals
// oldMax and rewrites it to newMax. If oldMax was the key of the parent's
// right child, there is no separator cell to update — by invariant the
// right child's key is implicit (spec.md §9, the noted off-by-one in the
// tutorial source around this exact case).
func (t *BTree) updateInternalNodeKey(parentPageNum uint32, oldMax, newMax uint32) error {
	parent, err := t.pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	idx := internalFindChild(parent, oldMax)
	if idx == InternalNumKeys(parent) {
		// oldMax named the parent's right child; nothing to rewrite.
		return nil
	}
	SetInternalKey(parent, idx, newMax)
	return nil
}

// internalInsert splices a newly-split child into parent, whose separator
// key is the child's own max key. Fails with ErrInternalSplitUnsupported
// if the parent would overflow — internal-node splitting is an explicit
// non-goal.
func (t *BTree) internalInsert(parentPageNum, childPageNum uint32) error {
	parent, err := t.pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	child, err := t.pager.GetPage(childPageNum)
	if err != nil {
		return err
	}

	childMax := MaxKey(child)
	idx := internalFindChild(parent, childMax)
	numKeysBefore := InternalNumKeys(parent)
	newNumKeys := numKeysBefore + 1

	if newNumKeys > InternalMaxCells {
		return fmt.Errorf("table: internal node %d page would hold %d keys (max %d): %w",
			parentPageNum, newNumKeys, InternalMaxCells, ErrInternalSplitUnsupported)
	}
	SetInternalNumKeys(parent, newNumKeys)

	rightChildPageNum := InternalRightChild(parent)
	rightChild, err := t.pager.GetPage(rightChildPageNum)
	if err != nil {
		return err
	}
	rightMax := MaxKey(rightChild)

	if childMax > rightMax {
		WriteInternalCell(parent, numKeysBefore, rightChildPageNum, rightMax)
		SetInternalRightChild(parent, childPageNum)
	} else {
		for i := numKeysBefore; i > idx; i-- {
			CopyInternalCell(parent, i, parent, i-1)
		}
		WriteInternalCell(parent, idx, childPageNum, childMax)
	}
	SetParentPageNum(child, parentPageNum)
	return nil
}

// createNewRoot relocates the current root's contents (always page 0) to
// a freshly allocated page, and rewrites page 0 in place as the new
// internal root with two children: the relocated old root, and
// rightChildPageNum.
func (t *BTree) createNewRoot(rightChildPageNum uint32) error {
	leftChildPageNum, err := t.pager.AllocatePage()
	if err != nil {
		return fmt.Errorf("table: createNewRoot: %w", err)
	}

	root, err := t.pager.GetPage(t.rootPageNum)
	if err != nil {
		return err
	}
	leftChild, err := t.pager.GetPage(leftChildPageNum)
	if err != nil {
		return err
	}

	leftChild.Data = root.Data
	SetRoot(leftChild, false)

	InitializeInternalNode(root)
	SetRoot(root, true)
	SetInternalNumKeys(root, 1)
	leftMax := MaxKey(leftChild)
	WriteInternalCell(root, 0, leftChildPageNum, leftMax)
	SetInternalRightChild(root, rightChildPageNum)

	SetParentPageNum(leftChild, t.rootPageNum)
	rightChild, err := t.pager.GetPage(rightChildPageNum)
	if err != nil {
		return err
	}
	SetParentPageNum(rightChild, t.rootPageNum)

	t.log.WithFields(logrus.Fields{"left": leftChildPageNum, "right": rightChildPageNum}).Debug("promoted new root")
	return nil
}
