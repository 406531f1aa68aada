package table

import (
	"encoding/binary"
	"fmt"

	"bptreedb/pager"
)

// This file is the node codec: pure accessors and mutators over a raw page,
// addressed by the fixed byte offsets in constants.go. It never allocates a
// page itself and never talks to the Pager — callers hand it a *pager.Page
// they already obtained.

// NodeType reads the one-byte node type discriminant.
func NodeType(p *pager.Page) uint8 {
	return p.Data[NodeTypeOffset]
}

// SetNodeType writes the node type discriminant.
func SetNodeType(p *pager.Page, t uint8) {
	p.Data[NodeTypeOffset] = t
}

// IsRoot reports whether this page is currently the tree's root.
func IsRoot(p *pager.Page) bool {
	return p.Data[IsRootOffset] != 0
}

// SetRoot marks (or unmarks) this page as the tree's root.
func SetRoot(p *pager.Page, isRoot bool) {
	if isRoot {
		p.Data[IsRootOffset] = 1
	} else {
		p.Data[IsRootOffset] = 0
	}
}

// ParentPageNum reads the parent page pointer. Undefined for the root.
func ParentPageNum(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[ParentPointerOffset : ParentPointerOffset+ParentPointerSize])
}

// SetParentPageNum writes the parent page pointer.
func SetParentPageNum(p *pager.Page, parent uint32) {
	binary.LittleEndian.PutUint32(p.Data[ParentPointerOffset:ParentPointerOffset+ParentPointerSize], parent)
}

// InitializeLeafNode resets p to an empty, non-root leaf.
func InitializeLeafNode(p *pager.Page) {
	SetNodeType(p, NodeTypeLeaf)
	SetRoot(p, false)
	SetLeafNumCells(p, 0)
	SetLeafNextLeaf(p, 0)
}

// InitializeInternalNode resets p to an empty, non-root internal node.
func InitializeInternalNode(p *pager.Page) {
	SetNodeType(p, NodeTypeInternal)
	SetRoot(p, false)
	SetInternalNumKeys(p, 0)
	SetInternalRightChild(p, 0)
}

// ---- Leaf accessors ----

// LeafNumCells reads the number of cells in use.
func LeafNumCells(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[LeafNumCellsOffset : LeafNumCellsOffset+LeafNumCellsSize])
}

// SetLeafNumCells writes the number of cells in use.
func SetLeafNumCells(p *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(p.Data[LeafNumCellsOffset:LeafNumCellsOffset+LeafNumCellsSize], n)
}

// LeafNextLeaf reads the right-sibling leaf pointer, or 0 if there is none.
func LeafNextLeaf(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[LeafNextLeafOffset : LeafNextLeafOffset+LeafNextLeafSize])
}

// SetLeafNextLeaf writes the right-sibling leaf pointer.
func SetLeafNextLeaf(p *pager.Page, next uint32) {
	binary.LittleEndian.PutUint32(p.Data[LeafNextLeafOffset:LeafNextLeafOffset+LeafNextLeafSize], next)
}

// leafCellOffset returns the byte offset of cell i within the page.
func leafCellOffset(i uint32) int {
	return LeafHeaderSize + int(i)*LeafCellSize
}

// LeafKey reads the key stored in cell i.
func LeafKey(p *pager.Page, i uint32) uint32 {
	off := leafCellOffset(i)
	return binary.LittleEndian.Uint32(p.Data[off : off+LeafKeySize])
}

// SetLeafKey writes the key stored in cell i.
func SetLeafKey(p *pager.Page, i uint32, key uint32) {
	off := leafCellOffset(i)
	binary.LittleEndian.PutUint32(p.Data[off:off+LeafKeySize], key)
}

// LeafValue returns the payload slice for cell i. The slice aliases the
// page's own buffer, so mutations through it are visible without a
// separate write-back call.
func LeafValue(p *pager.Page, i uint32) []byte {
	off := leafCellOffset(i) + LeafKeySize
	return p.Data[off : off+LeafCellSize-LeafKeySize]
}

// leafCell returns the raw key+payload bytes for cell i.
func leafCell(p *pager.Page, i uint32) []byte {
	off := leafCellOffset(i)
	return p.Data[off : off+LeafCellSize]
}

// CopyLeafCell copies the entire cell i (key+payload) from src to dst.
func CopyLeafCell(dst *pager.Page, dstIdx uint32, src *pager.Page, srcIdx uint32) {
	copy(leafCell(dst, dstIdx), leafCell(src, srcIdx))
}

// WriteLeafCell writes a whole key+payload cell at index i in one call.
func WriteLeafCell(p *pager.Page, i uint32, key uint32, payload []byte) {
	SetLeafKey(p, i, key)
	copy(LeafValue(p, i), payload)
}

// ---- Internal accessors ----

// InternalNumKeys reads the number of separator keys.
func InternalNumKeys(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[InternalNumKeysOffset : InternalNumKeysOffset+InternalNumKeysSize])
}

// SetInternalNumKeys writes the number of separator keys.
func SetInternalNumKeys(p *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(p.Data[InternalNumKeysOffset:InternalNumKeysOffset+InternalNumKeysSize], n)
}

// InternalRightChild reads the rightmost child pointer.
func InternalRightChild(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[InternalRightChildOffset : InternalRightChildOffset+InternalRightChildSize])
}

// SetInternalRightChild writes the rightmost child pointer.
func SetInternalRightChild(p *pager.Page, child uint32) {
	binary.LittleEndian.PutUint32(p.Data[InternalRightChildOffset:InternalRightChildOffset+InternalRightChildSize], child)
}

func internalCellOffset(i uint32) int {
	return InternalHeaderSize + int(i)*InternalCellSize
}

// InternalKey reads the separator key stored in cell i.
func InternalKey(p *pager.Page, i uint32) uint32 {
	off := internalCellOffset(i)
	return binary.LittleEndian.Uint32(p.Data[off+InternalChildPointerSize : off+InternalChildPointerSize+InternalKeySize])
}

// SetInternalKey writes the separator key stored in cell i.
func SetInternalKey(p *pager.Page, i uint32, key uint32) {
	off := internalCellOffset(i)
	binary.LittleEndian.PutUint32(p.Data[off+InternalChildPointerSize:off+InternalChildPointerSize+InternalKeySize], key)
}

// internalChildRaw reads the child pointer stored directly in cell i
// (ignoring the num_keys-th "i is the right child" special case handled by
// InternalChild).
func internalChildRaw(p *pager.Page, i uint32) uint32 {
	off := internalCellOffset(i)
	return binary.LittleEndian.Uint32(p.Data[off : off+InternalChildPointerSize])
}

func setInternalChildRaw(p *pager.Page, i uint32, child uint32) {
	off := internalCellOffset(i)
	binary.LittleEndian.PutUint32(p.Data[off:off+InternalChildPointerSize], child)
}

// InternalChild returns the page number of child i, for i in
// [0, num_keys]. i == num_keys returns the right child; i > num_keys is a
// fatal bug in the caller.
func InternalChild(p *pager.Page, i uint32) uint32 {
	numKeys := InternalNumKeys(p)
	if i > numKeys {
		panic(fmt.Sprintf("table: InternalChild: index %d > num_keys %d", i, numKeys))
	}
	if i == numKeys {
		return InternalRightChild(p)
	}
	return internalChildRaw(p, i)
}

// SetInternalChild writes the page number of child i, for i in
// [0, num_keys). Use SetInternalRightChild for i == num_keys.
func SetInternalChild(p *pager.Page, i uint32, child uint32) {
	setInternalChildRaw(p, i, child)
}

// WriteInternalCell writes a whole {child, key} cell at index i.
func WriteInternalCell(p *pager.Page, i uint32, child uint32, key uint32) {
	setInternalChildRaw(p, i, child)
	SetInternalKey(p, i, key)
}

// CopyInternalCell copies cell srcIdx of src into cell dstIdx of dst.
func CopyInternalCell(dst *pager.Page, dstIdx uint32, src *pager.Page, srcIdx uint32) {
	child := internalChildRaw(src, srcIdx)
	key := InternalKey(src, srcIdx)
	WriteInternalCell(dst, dstIdx, child, key)
}

// MaxKey returns the key a parent should use as p's separator: for a leaf,
// the key of its last cell; for an internal node, the key of its last
// cell. This matches the specification's definition exactly; callers only
// ever invoke MaxKey on a node that was a leaf a moment ago (the old root
// or old leaf being promoted/split), so the internal-node branch is never
// exercised along the insert path this engine supports.
func MaxKey(p *pager.Page) uint32 {
	switch NodeType(p) {
	case NodeTypeLeaf:
		n := LeafNumCells(p)
		if n == 0 {
			return 0
		}
		return LeafKey(p, n-1)
	case NodeTypeInternal:
		n := InternalNumKeys(p)
		if n == 0 {
			return 0
		}
		return InternalKey(p, n-1)
	default:
		panic(fmt.Sprintf("table: MaxKey: unknown node type %d", NodeType(p)))
	}
}
