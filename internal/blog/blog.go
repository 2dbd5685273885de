package blog

import (
	"context"
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("blog post not found")

type Post struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Image        string    `bson:"image" json:"image"`
	Body         string    `bson:"body" json:"body"`
	Category     string    `bson:"category" json:"category"`
	PostedByID   string    `bson:"posted_by_id" json:"posted_by_id"`
	PostedByName string    `bson:"posted_by_name" json:"posted_by_name"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

func (p Post) OwnerID() string { return p.PostedByID }

type Repository interface {
	List(ctx context.Context) ([]Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, post *Post) (string, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
}
