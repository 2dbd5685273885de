package order

import (
	"time"

	"github.com/Aarya06/Bookwizard/internal/cart"
)

// Line is one purchased item inside a snapshot. Prices are kept as
// canonical decimal strings so the stored record is exact and stable.
type Line struct {
	ItemID    string `bson:"item_id" json:"item_id"`
	Name      string `bson:"name" json:"name"`
	UnitPrice string `bson:"unit_price" json:"unit_price"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	Subtotal  string `bson:"subtotal" json:"subtotal"`
}

// Snapshot is the immutable record of a completed purchase: the cart's
// contents at charge time, the buyer, and the payment confirmation.
type Snapshot struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	BuyerID   string    `bson:"buyer_id" json:"buyer_id"`
	Lines     []Line    `bson:"lines" json:"lines"`
	Total     string    `bson:"total" json:"total"`
	Currency  string    `bson:"currency" json:"currency"`
	Address   string    `bson:"address" json:"address"`
	FirstName string    `bson:"first_name" json:"first_name"`
	LastName  string    `bson:"last_name" json:"last_name"`
	PaymentID string    `bson:"payment_id" json:"payment_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Published bool      `bson:"published" json:"-"`
}

// NewSnapshot deep-copies the cart's current lines into a snapshot. The
// snapshot holds no live reference to the cart.
func NewSnapshot(buyerID string, c *cart.Cart, currency, address, firstName, lastName, paymentID string) *Snapshot {
	snap := &Snapshot{
		BuyerID:   buyerID,
		Lines:     make([]Line, 0, c.Len()),
		Total:     c.TotalPrice().String(),
		Currency:  currency,
		Address:   address,
		FirstName: firstName,
		LastName:  lastName,
		PaymentID: paymentID,
		CreatedAt: time.Now(),
	}
	for line := range c.Items() {
		snap.Lines = append(snap.Lines, Line{
			ItemID:    line.Item.ItemID,
			Name:      line.Item.Name,
			UnitPrice: line.Item.UnitPrice.String(),
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal().String(),
		})
	}
	return snap
}
