package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWith(ids ...AccountID) Snapshot {
	var s Snapshot
	for _, id := range ids {
		s.Append(Account{ID: id, Username: string(id)})
	}
	return s
}

func displayOrders(s Snapshot) []int {
	orders := make([]int, 0, len(s.Accounts))
	for _, a := range s.SortedByDisplayOrder() {
		orders = append(orders, a.DisplayOrder)
	}
	return orders
}

func orderedIDs(s Snapshot) []AccountID {
	ids := make([]AccountID, 0, len(s.Accounts))
	for _, a := range s.SortedByDisplayOrder() {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestAppendAssignsDenseDisplayOrders(t *testing.T) {
	s := snapshotWith("a", "b", "c")
	assert.Equal(t, []int{0, 1, 2}, displayOrders(s))
}

func TestRemoveCompactsDisplayOrders(t *testing.T) {
	s := snapshotWith("a", "b", "c", "d")

	require.True(t, s.Remove("b"))

	assert.Equal(t, []int{0, 1, 2}, displayOrders(s))
	assert.Equal(t, []AccountID{"a", "c", "d"}, orderedIDs(s))

	assert.False(t, s.Remove("missing"))
}

func TestMoveReordersAndRecompacts(t *testing.T) {
	s := snapshotWith("a", "b", "c", "d")

	require.True(t, s.Move("d", 0))
	assert.Equal(t, []AccountID{"d", "a", "b", "c"}, orderedIDs(s))
	assert.Equal(t, []int{0, 1, 2, 3}, displayOrders(s))

	require.True(t, s.Move("d", 99))
	assert.Equal(t, []AccountID{"a", "b", "c", "d"}, orderedIDs(s))

	require.True(t, s.Move("a", -5))
	assert.Equal(t, []AccountID{"a", "b", "c", "d"}, orderedIDs(s))

	assert.False(t, s.Move("missing", 1))
}

func TestFindByIDAndUsername(t *testing.T) {
	s := snapshotWith("a", "b")

	assert.Equal(t, 1, s.FindByID("b"))
	assert.Equal(t, -1, s.FindByID("z"))
	assert.Equal(t, 0, s.FindByUsername("a"))
	assert.Equal(t, -1, s.FindByUsername("z"))
}

func TestCompactDisplayOrderNormalizesSparseOrders(t *testing.T) {
	s := Snapshot{Accounts: []Account{
		{ID: "a", DisplayOrder: 7},
		{ID: "b", DisplayOrder: 2},
		{ID: "c", DisplayOrder: 11},
	}}

	s.CompactDisplayOrder()

	assert.Equal(t, []AccountID{"b", "a", "c"}, orderedIDs(s))
	assert.Equal(t, []int{0, 1, 2}, displayOrders(s))
}
