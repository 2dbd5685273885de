package cart

import (
	"iter"

	"github.com/shopspring/decimal"
)

// ItemRef is a snapshot of a catalog item taken when it is added to a cart.
// Later price changes in the catalog do not affect lines already in a cart.
type ItemRef struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Line is one item's entry in a cart. A cart holds at most one line per
// item id; its quantity is always at least one.
type Line struct {
	Item     ItemRef `json:"item"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Item.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a session-scoped aggregate of item references with quantities.
// It is a pure value holder: catalog lookups happen before mutation, at the
// HTTP boundary, so the cart itself never fails and never blocks.
type Cart struct {
	lines map[string]*Line
	order []string // item ids in insertion order
}

func New() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// Add inserts a line for the item or, if one already exists, increments its
// quantity. Quantities below one are ignored.
func (c *Cart) Add(item ItemRef, quantity int) {
	if quantity < 1 {
		return
	}
	if line, ok := c.lines[item.ItemID]; ok {
		line.Quantity += quantity
		return
	}
	c.lines[item.ItemID] = &Line{Item: item, Quantity: quantity}
	c.order = append(c.order, item.ItemID)
}

// Remove deletes the item's line. Removing an absent item is a no-op.
func (c *Cart) Remove(itemID string) {
	if _, ok := c.lines[itemID]; !ok {
		return
	}
	delete(c.lines, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// SetQuantity replaces the line's quantity. A quantity below one removes
// the line entirely; setting an absent item is a no-op.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	line, ok := c.lines[itemID]
	if !ok {
		return
	}
	if quantity < 1 {
		c.Remove(itemID)
		return
	}
	line.Quantity = quantity
}

// Items yields the cart lines in insertion order. The sequence is
// restartable: each range over it starts from the first line again.
func (c *Cart) Items() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, id := range c.order {
			if !yield(*c.lines[id]) {
				return
			}
		}
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.order)
}

func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

// TotalPrice recomputes the sum of all line subtotals. It is never cached;
// an empty cart totals zero.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, id := range c.order {
		total = total.Add(c.lines[id].Subtotal())
	}
	return total
}
