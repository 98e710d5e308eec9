// Package cart holds the checkout cart as an immutable value type.
// Every transition returns a new snapshot, so a handler can never observe
// a half-applied mutation and stale references stay valid.
package cart

import (
	"github.com/google/uuid"
)

// Item is one cart line. UnitPrice is the price snapshot taken when the
// item was added; it is not re-fetched from the catalog.
type Item struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
}

// Cart is an ordered collection of items keyed by product id.
type Cart struct {
	items []Item
}

func New() Cart {
	return Cart{}
}

// Add merges quantity into an existing line for the same product, or
// appends a new line. There is no upper bound on quantity.
func (c Cart) Add(productID uuid.UUID, name string, unitPrice float64, quantity int) Cart {
	next := c.clone()
	for i, item := range next.items {
		if item.ProductID == productID {
			next.items[i].Quantity += quantity
			return next
		}
	}
	next.items = append(next.items, Item{
		ProductID:   productID,
		ProductName: name,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	})
	return next
}

// SetQuantity sets a line's quantity exactly. A quantity of zero or less
// removes the line, same as Remove.
func (c Cart) SetQuantity(productID uuid.UUID, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	next := c.clone()
	for i, item := range next.items {
		if item.ProductID == productID {
			next.items[i].Quantity = quantity
			break
		}
	}
	return next
}

// Remove deletes the line for the product if present, otherwise no-ops.
func (c Cart) Remove(productID uuid.UUID) Cart {
	next := Cart{}
	for _, item := range c.items {
		if item.ProductID != productID {
			next.items = append(next.items, item)
		}
	}
	return next
}

// Clear empties the cart.
func (c Cart) Clear() Cart {
	return Cart{}
}

// Items returns a copy of the cart lines in insertion order.
func (c Cart) Items() []Item {
	return c.clone().items
}

// TotalItems is the sum of line quantities.
func (c Cart) TotalItems() int {
	var total int
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity using add-time price snapshots.
func (c Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c Cart) clone() Cart {
	if len(c.items) == 0 {
		return Cart{}
	}
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return Cart{items: items}
}
