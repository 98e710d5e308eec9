package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesQuantities(t *testing.T) {
	productID := uuid.New()

	c := New().
		Add(productID, "Kaju Katli", 12.99, 2).
		Add(productID, "Kaju Katli", 12.99, 3)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, c.TotalItems())
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	productID := uuid.New()

	withItem := New().Add(productID, "Soan Papdi", 8.49, 2)
	removed := withItem.Remove(productID)
	zeroed := withItem.SetQuantity(productID, 0)

	assert.Equal(t, removed.Items(), zeroed.Items())
	assert.True(t, zeroed.IsEmpty())
}

func TestSetQuantityReplacesNotIncrements(t *testing.T) {
	productID := uuid.New()

	c := New().
		Add(productID, "Mixture", 4.99, 2).
		SetQuantity(productID, 7)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestRemoveMissingIsNoop(t *testing.T) {
	productID := uuid.New()

	c := New().Add(productID, "Besan Ladoo", 9.99, 1)
	unchanged := c.Remove(uuid.New())

	assert.Equal(t, c.Items(), unchanged.Items())
}

func TestTotalsUseAddTimePriceSnapshot(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	c := New().
		Add(first, "Jalebi", 6.50, 2).
		Add(second, "Chakli", 5.25, 4)

	assert.Equal(t, 6, c.TotalItems())
	assert.InDelta(t, 6.50*2+5.25*4, c.TotalPrice(), 1e-9)
}

func TestClear(t *testing.T) {
	c := New().Add(uuid.New(), "Rasgulla", 11.00, 3).Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0.0, c.TotalPrice())
}

func TestTransitionsDoNotMutateSnapshots(t *testing.T) {
	productID := uuid.New()

	before := New().Add(productID, "Barfi", 10.00, 1)
	after := before.Add(productID, "Barfi", 10.00, 9)

	assert.Equal(t, 1, before.TotalItems())
	assert.Equal(t, 10, after.TotalItems())
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()
	sessionID := NewSessionID()

	assert.True(t, store.Get(sessionID).IsEmpty())

	snapshot := New().Add(uuid.New(), "Mysore Pak", 13.25, 2)
	store.Save(sessionID, snapshot)
	assert.Equal(t, 2, store.Get(sessionID).TotalItems())

	store.Delete(sessionID)
	assert.True(t, store.Get(sessionID).IsEmpty())
}
