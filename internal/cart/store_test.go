package cart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/microshop/storefront/internal/domain"
)

func TestGet_CreatesCartLazily(t *testing.T) {
	store := NewStore()

	c := store.Get("u1")
	require.Equal(t, "u1", c.UserID)
	require.Empty(t, c.Items)
	require.False(t, c.UpdatedAt.IsZero())

	// Second read returns the same (still empty) cart, not a new one.
	again := store.Get("u1")
	require.Equal(t, c.UserID, again.UserID)
	require.Empty(t, again.Items)
}

func TestAddItem_MergesBySummingQuantity(t *testing.T) {
	store := NewStore()

	_, err := store.AddItem("u1", "p1", 1)
	require.NoError(t, err)

	c, err := store.AddItem("u1", "p1", 2)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	require.Equal(t, domain.CartItem{ProductID: "p1", Quantity: 3}, c.Items[0])
}

func TestAddItem_AppendsNewLines(t *testing.T) {
	store := NewStore()

	_, err := store.AddItem("u1", "p1", 3)
	require.NoError(t, err)
	c, err := store.AddItem("u1", "p2", 1)
	require.NoError(t, err)

	require.Len(t, c.Items, 2)
	require.Equal(t, "p1", c.Items[0].ProductID)
	require.Equal(t, "p2", c.Items[1].ProductID)
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	store := NewStore()

	for _, qty := range []int{0, -1} {
		_, err := store.AddItem("u1", "p1", qty)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	}
	require.Empty(t, store.Get("u1").Items)
}

func TestRemoveItem_DropsWholeLine(t *testing.T) {
	store := NewStore()

	_, err := store.AddItem("u1", "p1", 3)
	require.NoError(t, err)
	_, err = store.AddItem("u1", "p2", 1)
	require.NoError(t, err)

	c := store.RemoveItem("u1", "p1")
	require.Len(t, c.Items, 1)
	require.Equal(t, domain.CartItem{ProductID: "p2", Quantity: 1}, c.Items[0])
}

func TestRemoveItem_AbsentLineIsNoop(t *testing.T) {
	store := NewStore()

	c := store.RemoveItem("u1", "p1")
	require.Empty(t, c.Items)
}

func TestClear_ForgetsCart(t *testing.T) {
	store := NewStore()

	_, err := store.AddItem("u1", "p1", 2)
	require.NoError(t, err)

	store.Clear("u1")
	require.Empty(t, store.Get("u1").Items)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	store := NewStore()

	_, err := store.AddItem("u1", "p1", 1)
	require.NoError(t, err)

	require.Empty(t, store.Get("u2").Items)
}

func TestSnapshotsDoNotAliasStoreState(t *testing.T) {
	store := NewStore()

	c, err := store.AddItem("u1", "p1", 1)
	require.NoError(t, err)
	c.Items[0].Quantity = 99

	require.Equal(t, 1, store.Get("u1").Items[0].Quantity)
}
