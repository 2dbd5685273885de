package catalog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service fronts the book repository with a read-through cache. Writes go
// straight to the repository and invalidate the cached entry.
type Service struct {
	books  BookRepository
	ebooks EbookRepository
	cache  BookCache
	logger *zap.Logger
	sfg    singleflight.Group // prevents cache stampede on one book
}

func NewService(books BookRepository, ebooks EbookRepository, cache BookCache, logger *zap.Logger) *Service {
	return &Service{
		books:  books,
		ebooks: ebooks,
		cache:  cache,
		logger: logger,
	}
}

// GetBook serves a single book, from cache when possible. Concurrent
// misses for the same id collapse into one repository read.
func (s *Service) GetBook(ctx context.Context, id string) (*Book, error) {
	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {
		book, err := s.cache.Get(ctx, id)
		if err == nil {
			return book, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("book cache get failed", zap.String("book_id", id), zap.Error(err))
		}

		book, err = s.books.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), book); err != nil {
				s.logger.Warn("book cache set failed", zap.String("book_id", id), zap.Error(err))
			}
		}()

		return book, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Book), nil
}

func (s *Service) ListBooks(ctx context.Context) ([]Book, error) {
	return s.books.List(ctx)
}

func (s *Service) SearchBooks(ctx context.Context, prefix string) ([]Book, error) {
	return s.books.SearchByTitle(ctx, prefix)
}

func (s *Service) BooksByCategory(ctx context.Context, category string) ([]Book, error) {
	return s.books.ByCategory(ctx, category)
}

func (s *Service) Bestsellers(ctx context.Context) ([]Book, error) {
	return s.books.Bestsellers(ctx)
}

func (s *Service) CreateBook(ctx context.Context, book *Book) (string, error) {
	return s.books.Create(ctx, book)
}

func (s *Service) UpdateBook(ctx context.Context, book *Book) error {
	if err := s.books.Update(ctx, book); err != nil {
		return err
	}
	s.invalidate(book.ID)
	return nil
}

func (s *Service) DeleteBook(ctx context.Context, id string) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *Service) GetEbook(ctx context.Context, id string) (*Ebook, error) {
	return s.ebooks.GetByID(ctx, id)
}

func (s *Service) ListEbooks(ctx context.Context) ([]Ebook, error) {
	return s.ebooks.List(ctx)
}

func (s *Service) SearchEbooks(ctx context.Context, prefix string) ([]Ebook, error) {
	return s.ebooks.SearchByTitle(ctx, prefix)
}

func (s *Service) EbooksByCategory(ctx context.Context, category string) ([]Ebook, error) {
	return s.ebooks.ByCategory(ctx, category)
}

func (s *Service) CreateEbook(ctx context.Context, ebook *Ebook) (string, error) {
	return s.ebooks.Create(ctx, ebook)
}

func (s *Service) DeleteEbook(ctx context.Context, id string) error {
	return s.ebooks.Delete(ctx, id)
}

func (s *Service) invalidate(bookID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, bookID); err != nil {
		s.logger.Warn("book cache invalidate failed", zap.String("book_id", bookID), zap.Error(err))
	}
}
