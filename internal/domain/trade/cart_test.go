package trade

import (
	"testing"

	"github.com/ergolife/storefront/internal/domain/catalog"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productSnapshot(id uint, price int64) catalog.Product {
	p := catalog.Product{Name: "p", Category: catalog.CategoryChair, Price: price}
	p.ID = id
	return p
}

func TestCart_Add(t *testing.T) {
	t.Run("adding the same product twice increments one line", func(t *testing.T) {
		cart := NewCart(1)

		_, err := cart.Add(10, 1)
		require.NoError(t, err)
		line, err := cart.Add(10, 1)
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, line.Quantity)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("different products get separate lines", func(t *testing.T) {
		cart := NewCart(1)
		_, _ = cart.Add(10, 1)
		_, _ = cart.Add(11, 3)

		require.Len(t, cart.Items, 2)
		assert.Equal(t, 4, cart.ItemCount())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		cart := NewCart(1)
		_, err := cart.Add(10, 0)
		assert.Error(t, err)
		assert.True(t, cart.IsEmpty())
	})
}

func TestCart_Subtotal(t *testing.T) {
	cart := NewCart(1)
	cart.Items = []CartItem{
		{ProductID: 1, Product: productSnapshot(1, 8500000), Quantity: 1},
		{ProductID: 5, Product: productSnapshot(5, 950000), Quantity: 2},
	}
	assert.Equal(t, int64(10400000), cart.Subtotal())

	t.Run("missing snapshot counts as zero", func(t *testing.T) {
		cart.Items = append(cart.Items, CartItem{ProductID: 99, Quantity: 4})
		assert.Equal(t, int64(10400000), cart.Subtotal())
	})
}

func TestCart_ItemAndRemove(t *testing.T) {
	cart := NewCart(1)
	cart.Items = []CartItem{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 1}}
	cart.Items[0].ID = 100
	cart.Items[1].ID = 101

	item, ok := cart.Item(101)
	require.True(t, ok)
	require.NoError(t, item.SetQuantity(5))
	assert.Equal(t, 5, cart.Items[1].Quantity)
	assert.Error(t, item.SetQuantity(-1))

	assert.True(t, cart.Remove(100))
	assert.False(t, cart.Remove(100))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(101), cart.Items[0].ID)
}

func TestNewOrderFromCart(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		_, err := NewOrderFromCart(NewCart(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Equal(t, "Cart is empty", err.Error())
	})

	t.Run("snapshots lines", func(t *testing.T) {
		cart := NewCart(7)
		cart.Items = []CartItem{
			{ProductID: 1, Product: productSnapshot(1, 8500000), Quantity: 1},
			{ProductID: 5, Product: productSnapshot(5, 950000), Quantity: 2},
		}
		order, err := NewOrderFromCart(cart)
		require.NoError(t, err)

		assert.Equal(t, uint(7), order.UserID)
		assert.Equal(t, OrderStatusPending, order.Status)
		require.Len(t, order.Items, 2)
		assert.Equal(t, int64(10400000), order.Subtotal)
		assert.Equal(t, int64(10400000), order.TotalAmount)
		assert.Equal(t, 3, order.ItemCount())
	})

	t.Run("rejects a line whose product vanished", func(t *testing.T) {
		cart := NewCart(7)
		cart.Items = []CartItem{{ProductID: 3, Quantity: 1}}
		_, err := NewOrderFromCart(cart)
		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "PRODUCT_NOT_FOUND", de.Code)
	})
}
