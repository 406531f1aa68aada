package table

import (
	"fmt"
	"io"
	"strings"
)

// PrintTree walks the tree from the root and writes a recursive
// description of its shape to w: at each level, either
// "leaf (size N)" with its keys, or "internal (size N)" with its children
// and separator keys. Used for tests and interactive debugging only
// (the ".btree" shell command).
func (t *BTree) PrintTree(w io.Writer) error {
	return t.printNode(w, t.rootPageNum, 0)
}

func (t *BTree) printNode(w io.Writer, pageNum uint32, indent int) error {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return err
	}
	pad := strings.Repeat("  ", indent)

	switch NodeType(page) {
	case NodeTypeLeaf:
		n := LeafNumCells(page)
		fmt.Fprintf(w, "%sleaf (size %d)\n", pad, n)
		for i := uint32(0); i < n; i++ {
			fmt.Fprintf(w, "%s  - %d\n", pad, LeafKey(page, i))
		}
		return nil
	case NodeTypeInternal:
		numKeys := InternalNumKeys(page)
		fmt.Fprintf(w, "%sinternal (size %d)\n", pad, numKeys)
		for i := uint32(0); i < numKeys; i++ {
			child := InternalChild(page, i)
			if err := t.printNode(w, child, indent+1); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s  - key %d\n", pad, InternalKey(page, i))
		}
		rightChild := InternalRightChild(page)
		return t.printNode(w, rightChild, indent+1)
	default:
		return fmt.Errorf("table: PrintTree: unknown node type %d at page %d", NodeType(page), pageNum)
	}
}
