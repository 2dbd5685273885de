package wishlist

import (
	"context"
	"errors"
	"time"
)

var ErrEntryNotFound = errors.New("wishlist entry not found")

// Entry marks one book on one user's wishlist.
type Entry struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	BookID    string    `bson:"book_id" json:"book_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Repository interface {
	// Add is idempotent: adding a book already on the wishlist is a no-op.
	Add(ctx context.Context, userID, bookID string) error
	Remove(ctx context.Context, userID, bookID string) error
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
}
