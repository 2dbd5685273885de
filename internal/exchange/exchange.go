package exchange

import (
	"context"
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("exchange post not found")

// Post is a book-exchange board entry: the book offered, the book wanted,
// and how to reach the poster.
type Post struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	OfferedTitle  string    `bson:"offered_title" json:"offered_title"`
	OfferedAuthor string    `bson:"offered_author" json:"offered_author"`
	OfferedImage  string    `bson:"offered_image" json:"offered_image"`
	WantedTitle   string    `bson:"wanted_title" json:"wanted_title"`
	WantedAuthor  string    `bson:"wanted_author" json:"wanted_author"`
	WantedImage   string    `bson:"wanted_image" json:"wanted_image"`
	PostedByID    string    `bson:"posted_by_id" json:"posted_by_id"`
	PostedByName  string    `bson:"posted_by_name" json:"posted_by_name"`
	Address       string    `bson:"address" json:"address"`
	Contact       string    `bson:"contact" json:"contact"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

func (p Post) OwnerID() string { return p.PostedByID }

type Repository interface {
	List(ctx context.Context) ([]Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, post *Post) (string, error)
	Delete(ctx context.Context, id string) error
}
