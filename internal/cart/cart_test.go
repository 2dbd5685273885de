package cart

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemRef(id, name, price string) ItemRef {
	return ItemRef{
		ItemID:    id,
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestAdd_NewLine(t *testing.T) {
	c := New()
	c.Add(itemRef("b1", "The Go Programming Language", "10.00"), 1)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "b1", lines[0].Item.ItemID)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAdd_SameItemAccumulates(t *testing.T) {
	c := New()
	c.Add(itemRef("b1", "Dune", "12.50"), 2)
	c.Add(itemRef("b1", "Dune", "12.50"), 3)

	lines := c.Lines()
	require.Len(t, lines, 1, "repeated add must not duplicate the line")
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAdd_NonPositiveQuantityIgnored(t *testing.T) {
	c := New()
	c.Add(itemRef("b1", "Dune", "12.50"), 0)
	c.Add(itemRef("b1", "Dune", "12.50"), -3)

	assert.True(t, c.IsEmpty())
}

func TestRemove_AbsentIsNoOp(t *testing.T) {
	c := New()
	c.Add(itemRef("b1", "Dune", "12.50"), 1)

	c.Remove("missing")

	assert.Equal(t, 1, c.Len())
}

func TestRemove_DeletesWholeLine(t *testing.T) {
	c := New()
	c.Add(itemRef("b1", "Dune", "12.50"), 4)

	c.Remove("b1")

	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.Add(itemRef("b1", "Dune", "12.50"), 4)

	c.SetQuantity("b1", 2)
	require.Equal(t, 2, c.Lines()[0].Quantity)

	// dropping to zero removes the line entirely
	c.SetQuantity("b1", 0)
	assert.True(t, c.IsEmpty())

	// absent item is a no-op
	c.SetQuantity("missing", 3)
	assert.True(t, c.IsEmpty())
}

func TestTotalPrice_EmptyCartIsZero(t *testing.T) {
	c := New()
	assert.True(t, c.TotalPrice().IsZero())
}

func TestTotalPrice_SumOfSubtotals(t *testing.T) {
	c := New()
	c.Add(itemRef("a", "book A", "10.00"), 2)
	c.Add(itemRef("b", "book B", "5.00"), 1)

	assert.True(t, c.TotalPrice().Equal(decimal.RequireFromString("25.00")),
		"got %s", c.TotalPrice())
}

// TestTotalPrice_Property drives the cart with random add/remove sequences
// and checks the total always equals the sum over the current lines.
func TestTotalPrice_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	items := []ItemRef{
		itemRef("a", "book A", "10.00"),
		itemRef("b", "book B", "5.00"),
		itemRef("c", "book C", "7.25"),
		itemRef("d", "book D", "0.99"),
	}

	c := New()
	for i := 0; i < 500; i++ {
		item := items[rng.Intn(len(items))]
		switch rng.Intn(3) {
		case 0, 1:
			c.Add(item, rng.Intn(3)+1)
		case 2:
			c.Remove(item.ItemID)
		}

		want := decimal.Zero
		for _, line := range c.Lines() {
			want = want.Add(line.Item.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		require.True(t, c.TotalPrice().Equal(want),
			"step %d: total %s, want %s", i, c.TotalPrice(), want)
	}
}

func TestItems_InsertionOrderAndRestartable(t *testing.T) {
	c := New()
	c.Add(itemRef("z", "book Z", "1.00"), 1)
	c.Add(itemRef("a", "book A", "2.00"), 1)
	c.Add(itemRef("m", "book M", "3.00"), 1)

	var first []string
	for line := range c.Items() {
		first = append(first, line.Item.ItemID)
	}
	assert.Equal(t, []string{"z", "a", "m"}, first)

	// a second range starts over from the first line
	var second []string
	for line := range c.Items() {
		second = append(second, line.Item.ItemID)
		if len(second) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"z", "a"}, second)
}

func TestLineSubtotal(t *testing.T) {
	line := Line{Item: itemRef("a", "book A", "10.00"), Quantity: 3}
	assert.True(t, line.Subtotal().Equal(decimal.RequireFromString("30.00")))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c := New()
	c.Add(itemRef("z", "book Z", "19.99"), 2)
	c.Add(itemRef("a", "book A", "5.50"), 1)
	c.Add(itemRef("m", "book M", "3.10"), 7)
	c.Remove("a")

	data, err := c.Encode()
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	want := c.Lines()
	gotLines := got.Lines()
	require.Len(t, gotLines, len(want))
	for i := range want {
		assert.Equal(t, want[i].Item.ItemID, gotLines[i].Item.ItemID)
		assert.Equal(t, want[i].Item.Name, gotLines[i].Item.Name)
		assert.True(t, want[i].Item.UnitPrice.Equal(gotLines[i].Item.UnitPrice))
		assert.Equal(t, want[i].Quantity, gotLines[i].Quantity)
	}
	assert.True(t, c.TotalPrice().Equal(got.TotalPrice()))
}

func TestEncodeDecode_EmptyCart(t *testing.T) {
	data, err := New().Encode()
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestDecode_UnknownVersion(t *testing.T) {
	_, err := Decode([]byte(`{"v":99,"lines":[]}`))
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)
}
