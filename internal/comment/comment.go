package comment

import (
	"context"
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")

// ParentType names the kind of content a comment thread hangs off.
type ParentType string

const (
	ParentBook  ParentType = "book"
	ParentEbook ParentType = "ebook"
	ParentBlog  ParentType = "blog"
)

type Comment struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	ParentType   ParentType `bson:"parent_type" json:"parent_type"`
	ParentID     string     `bson:"parent_id" json:"parent_id"`
	Text         string     `bson:"text" json:"text"`
	PostedByID   string     `bson:"posted_by_id" json:"posted_by_id"`
	PostedByName string     `bson:"posted_by_name" json:"posted_by_name"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
}

func (c Comment) OwnerID() string { return c.PostedByID }

type Repository interface {
	ListByParent(ctx context.Context, parentType ParentType, parentID string) ([]Comment, error)
	GetByID(ctx context.Context, id string) (*Comment, error)
	Create(ctx context.Context, c *Comment) (string, error)
	Delete(ctx context.Context, id string) error
}
