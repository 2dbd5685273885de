package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aarya06/Bookwizard/internal/cart"
)

// Book is a physical book in the catalog. Price is a canonical decimal
// string; it is parsed only at the cart boundary.
type Book struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Author      string    `bson:"author" json:"author"`
	Image       string    `bson:"image" json:"image"`
	Price       string    `bson:"price" json:"price"`
	Language    string    `bson:"language" json:"language"`
	Pages       int       `bson:"pages" json:"pages"`
	Publication string    `bson:"publication" json:"publication"`
	Category    string    `bson:"category" json:"category"`
	Description string    `bson:"description" json:"description"`
	Bestseller  bool      `bson:"bestseller" json:"bestseller"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// ItemRef captures the book's identity and current price as a cart line
// snapshot. The snapshot is taken by value: later catalog edits do not
// reach carts that already hold the book.
func (b Book) ItemRef() (cart.ItemRef, error) {
	price, err := decimal.NewFromString(b.Price)
	if err != nil {
		return cart.ItemRef{}, fmt.Errorf("book %s has malformed price %q: %w", b.ID, b.Price, err)
	}
	if price.IsNegative() {
		return cart.ItemRef{}, fmt.Errorf("book %s has negative price %q", b.ID, b.Price)
	}
	// Prices finer than the minor currency unit would truncate when the
	// charge amount is converted to minor units at checkout.
	if !price.Equal(price.Round(2)) {
		return cart.ItemRef{}, fmt.Errorf("book %s has sub-minor-unit price %q", b.ID, b.Price)
	}
	return cart.ItemRef{ItemID: b.ID, Name: b.Title, UnitPrice: price}, nil
}

// Ebook is a downloadable book. Ebooks are free to download and never enter
// a cart.
type Ebook struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Author      string    `bson:"author" json:"author"`
	Image       string    `bson:"image" json:"image"`
	Language    string    `bson:"language" json:"language"`
	Format      string    `bson:"format" json:"format"`
	Pages       int       `bson:"pages" json:"pages"`
	Publication string    `bson:"publication" json:"publication"`
	Category    string    `bson:"category" json:"category"`
	Download    string    `bson:"download" json:"download"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
