package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorCrossesLeafBoundaryOnAdvance(t *testing.T) {
	tree := newTestTree(t)
	for k := uint32(1); k <= 14; k++ {
		require.NoError(t, tree.Insert(k, payloadForKey(k)))
	}

	cursor, err := tree.Start()
	require.NoError(t, err)

	seen := map[uint32]bool{}
	firstPage := cursor.PageNum
	crossedLeaf := false
	for !cursor.EndOfTable {
		key, err := tree.Key(cursor)
		require.NoError(t, err)
		seen[key] = true
		if cursor.PageNum != firstPage {
			crossedLeaf = true
		}
		require.NoError(t, tree.Advance(cursor))
	}

	assert.True(t, crossedLeaf, "scan over 14 keys must cross at least one leaf boundary")
	assert.Len(t, seen, 14)
}

func TestSelectOnEmptyDatabasePrintsNothing(t *testing.T) {
	tree := newTestTree(t)
	cursor, err := tree.Start()
	require.NoError(t, err)
	assert.True(t, cursor.EndOfTable)

	count := 0
	for !cursor.EndOfTable {
		count++
		require.NoError(t, tree.Advance(cursor))
	}
	assert.Zero(t, count)
}

func TestValueReturnsStoredPayload(t *testing.T) {
	tree := newTestTree(t)
	payload := payloadForKey(5)
	require.NoError(t, tree.Insert(5, payload))

	cursor, err := tree.Find(5)
	require.NoError(t, err)
	got, err := tree.Value(cursor)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
