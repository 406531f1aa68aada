package table

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bptreedb/column"
	"bptreedb/pager"
)

func newTestTree(t *testing.T) *BTree {
	t.Helper()
	p, err := pager.Open(afero.NewMemMapFs(), "/test.db")
	require.NoError(t, err)
	tree, err := NewBTree(p)
	require.NoError(t, err)
	return tree
}

func payloadForKey(key uint32) []byte {
	buf := make([]byte, column.RowSize)
	row := Row{ID: key, Username: "u", Email: "e"}
	_ = SerializeRow(row, buf)
	return buf
}

func scanKeys(t *testing.T, tree *BTree) []uint32 {
	t.Helper()
	cursor, err := tree.Start()
	require.NoError(t, err)

	var keys []uint32
	for !cursor.EndOfTable {
		key, err := tree.Key(cursor)
		require.NoError(t, err)
		keys = append(keys, key)
		require.NoError(t, tree.Advance(cursor))
	}
	return keys
}

func TestInsertSingleKeyIntoEmptyDatabase(t *testing.T) {
	tree := newTestTree(t)
	require.NoError(t, tree.Insert(1, payloadForKey(1)))

	assert.Equal(t, []uint32{1}, scanKeys(t, tree))
}

func TestInsertIsSortedRegardlessOfOrder(t *testing.T) {
	tree := newTestTree(t)
	for _, k := range []uint32{50, 10, 70, 30, 60, 20, 40} {
		require.NoError(t, tree.Insert(k, payloadForKey(k)))
	}

	assert.Equal(t, []uint32{10, 20, 30, 40, 50, 60, 70}, scanKeys(t, tree))
}

func TestInsertDuplicateKeyFails(t *testing.T) {
	tree := newTestTree(t)
	require.NoError(t, tree.Insert(1, payloadForKey(1)))

	err := tree.Insert(1, payloadForKey(1))
	require.ErrorIs(t, err, ErrDuplicateKey)

	// state is unmutated: still exactly one row.
	assert.Equal(t, []uint32{1}, scanKeys(t, tree))
}

func TestInsertAscendingTriggersLeafSplitAndRootPromotion(t *testing.T) {
	tree := newTestTree(t)
	for k := uint32(1); k <= 14; k++ {
		require.NoError(t, tree.Insert(k, payloadForKey(k)))
	}

	root, err := tree.pager.GetPage(RootPageNum)
	require.NoError(t, err)
	assert.Equal(t, NodeTypeInternal, NodeType(root))
	assert.EqualValues(t, 1, InternalNumKeys(root))
	assert.True(t, IsRoot(root))

	var expected []uint32
	for k := uint32(1); k <= 14; k++ {
		expected = append(expected, k)
	}
	assert.Equal(t, expected, scanKeys(t, tree))
}

func TestInsertDescendingYieldsSameSortedScan(t *testing.T) {
	tree := newTestTree(t)
	for k := uint32(14); k >= 1; k-- {
		require.NoError(t, tree.Insert(k, payloadForKey(k)))
	}

	var expected []uint32
	for k := uint32(1); k <= 14; k++ {
		expected = append(expected, k)
	}
	assert.Equal(t, expected, scanKeys(t, tree))
}

func TestLeafLinkageVisitsEveryLeafOnceAndTerminates(t *testing.T) {
	tree := newTestTree(t)
	for k := uint32(1); k <= 40; k++ {
		err := tree.Insert(k, payloadForKey(k))
		if err != nil {
			// Internal-node splitting is unsupported; stop once we hit
			// that boundary and verify everything inserted so far is
			// still consistent.
			require.ErrorIs(t, err, ErrInternalSplitUnsupported)
			break
		}
	}

	keys := scanKeys(t, tree)
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i], "scan must be strictly ascending")
	}
}

func TestInsertBeyondInternalCapacityReturnsInternalSplitUnsupported(t *testing.T) {
	tree := newTestTree(t)
	var lastErr error
	for k := uint32(1); k <= 64; k++ {
		lastErr = tree.Insert(k, payloadForKey(k))
		if lastErr != nil {
			break
		}
	}
	require.ErrorIs(t, lastErr, ErrInternalSplitUnsupported)
}

func TestSeparatorKeysMatchChildMaxKeys(t *testing.T) {
	tree := newTestTree(t)
	for k := uint32(1); k <= 14; k++ {
		require.NoError(t, tree.Insert(k, payloadForKey(k)))
	}

	root, err := tree.pager.GetPage(RootPageNum)
	require.NoError(t, err)
	require.Equal(t, NodeTypeInternal, NodeType(root))

	numKeys := InternalNumKeys(root)
	for i := uint32(0); i < numKeys; i++ {
		childPageNum := InternalChild(root, i)
		child, err := tree.pager.GetPage(childPageNum)
		require.NoError(t, err)
		assert.Equal(t, InternalKey(root, i), MaxKey(child))
	}
}

func TestFindEmptyDatabaseStartsAtLeafZero(t *testing.T) {
	tree := newTestTree(t)
	cursor, err := tree.Start()
	require.NoError(t, err)
	assert.True(t, cursor.EndOfTable)
	assert.EqualValues(t, 0, cursor.PageNum)
	assert.EqualValues(t, 0, cursor.CellNum)
}
