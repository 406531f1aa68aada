package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bptreedb/pager"
)

func TestLeafNodeHeaderRoundTrip(t *testing.T) {
	page := &pager.Page{}
	InitializeLeafNode(page)
	SetRoot(page, true)
	SetParentPageNum(page, 42)
	SetLeafNextLeaf(page, 7)
	SetLeafNumCells(page, 3)

	assert.Equal(t, NodeTypeLeaf, NodeType(page))
	assert.True(t, IsRoot(page))
	assert.EqualValues(t, 42, ParentPageNum(page))
	assert.EqualValues(t, 7, LeafNextLeaf(page))
	assert.EqualValues(t, 3, LeafNumCells(page))
}

func TestLeafCellRoundTrip(t *testing.T) {
	page := &pager.Page{}
	InitializeLeafNode(page)

	payload := make([]byte, LeafCellSize-LeafKeySize)
	for i := range payload {
		payload[i] = byte(i)
	}
	WriteLeafCell(page, 0, 99, payload)

	assert.EqualValues(t, 99, LeafKey(page, 0))
	assert.Equal(t, payload, LeafValue(page, 0))
}

func TestLeafMaxCellsMatchesWorkedExample(t *testing.T) {
	// spec.md §8 scenario 3: PAGE_SIZE=4096, ROW_SIZE=293, cell size=297,
	// leaf header=14, capacity = floor(4082/297) = 13.
	assert.EqualValues(t, 14, LeafHeaderSize)
	assert.EqualValues(t, 297, LeafCellSize)
	assert.EqualValues(t, 13, LeafMaxCells)
	assert.EqualValues(t, 7, LeafRightSplitCount)
	assert.EqualValues(t, 7, LeafLeftSplitCount)
}

func TestInternalNodeRoundTrip(t *testing.T) {
	page := &pager.Page{}
	InitializeInternalNode(page)
	SetInternalNumKeys(page, 2)
	SetInternalRightChild(page, 5)
	WriteInternalCell(page, 0, 1, 10)
	WriteInternalCell(page, 1, 2, 20)

	assert.EqualValues(t, 2, InternalNumKeys(page))
	assert.EqualValues(t, 5, InternalRightChild(page))
	assert.EqualValues(t, 1, InternalChild(page, 0))
	assert.EqualValues(t, 10, InternalKey(page, 0))
	assert.EqualValues(t, 2, InternalChild(page, 1))
	assert.EqualValues(t, 20, InternalKey(page, 1))
	// i == num_keys returns the right child.
	assert.EqualValues(t, 5, InternalChild(page, 2))
}

func TestInternalChildBeyondNumKeysPanics(t *testing.T) {
	page := &pager.Page{}
	InitializeInternalNode(page)
	SetInternalNumKeys(page, 1)

	assert.Panics(t, func() {
		InternalChild(page, 2)
	})
}

func TestMaxKeyLeaf(t *testing.T) {
	page := &pager.Page{}
	InitializeLeafNode(page)
	SetLeafNumCells(page, 3)
	WriteLeafCell(page, 0, 1, make([]byte, LeafCellSize-LeafKeySize))
	WriteLeafCell(page, 1, 5, make([]byte, LeafCellSize-LeafKeySize))
	WriteLeafCell(page, 2, 9, make([]byte, LeafCellSize-LeafKeySize))

	assert.EqualValues(t, 9, MaxKey(page))
}

func TestCopyLeafCell(t *testing.T) {
	src := &pager.Page{}
	InitializeLeafNode(src)
	payload := []byte("hello-world-payload-bytes-padded-out-to-row-size")
	buf := make([]byte, LeafCellSize-LeafKeySize)
	copy(buf, payload)
	WriteLeafCell(src, 2, 77, buf)

	dst := &pager.Page{}
	InitializeLeafNode(dst)
	CopyLeafCell(dst, 0, src, 2)

	assert.EqualValues(t, 77, LeafKey(dst, 0))
	assert.Equal(t, buf, LeafValue(dst, 0))
}
