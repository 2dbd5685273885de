package event

import (
	"context"
	"errors"
	"time"
)

var ErrEventNotFound = errors.New("event not found")

// Event is a store event listing (signings, readings, fairs).
type Event struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Location     string    `bson:"location" json:"location"`
	Image        string    `bson:"image" json:"image"`
	Link         string    `bson:"link" json:"link"`
	Body         string    `bson:"body" json:"body"`
	Date         time.Time `bson:"date" json:"date"`
	PostedByID   string    `bson:"posted_by_id" json:"posted_by_id"`
	PostedByName string    `bson:"posted_by_name" json:"posted_by_name"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

func (e Event) OwnerID() string { return e.PostedByID }

type Repository interface {
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, ev *Event) (string, error)
	Update(ctx context.Context, ev *Event) error
	Delete(ctx context.Context, id string) error
}
