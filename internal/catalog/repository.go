package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("catalog item not found")

type BookRepository interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id string) (*Book, error)
	SearchByTitle(ctx context.Context, prefix string) ([]Book, error)
	ByCategory(ctx context.Context, category string) ([]Book, error)
	Bestsellers(ctx context.Context) ([]Book, error)
	Create(ctx context.Context, book *Book) (string, error)
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id string) error
}

type EbookRepository interface {
	List(ctx context.Context) ([]Ebook, error)
	GetByID(ctx context.Context, id string) (*Ebook, error)
	SearchByTitle(ctx context.Context, prefix string) ([]Ebook, error)
	ByCategory(ctx context.Context, category string) ([]Ebook, error)
	Create(ctx context.Context, ebook *Ebook) (string, error)
	Delete(ctx context.Context, id string) error
}
