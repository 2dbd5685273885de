package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockBookRepository struct {
	BookRepository

	mu       sync.Mutex
	books    map[string]*Book
	getCalls int
}

func (m *mockBookRepository) GetByID(_ context.Context, id string) (*Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	book, ok := m.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return book, nil
}

type mockCache struct {
	mu      sync.Mutex
	entries map[string]*Book
	getErr  error
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]*Book)}
}

func (m *mockCache) Get(_ context.Context, id string) (*Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	book, ok := m.entries[id]
	if !ok {
		return nil, ErrCacheMiss
	}
	return book, nil
}

func (m *mockCache) Set(_ context.Context, book *Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[book.ID] = book
	return nil
}

func (m *mockCache) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func testBook(id string) *Book {
	return &Book{ID: id, Title: "Dune", Author: "Frank Herbert", Price: "12.50", Category: "scifi"}
}

func TestGetBook_CacheMissReadsRepository(t *testing.T) {
	repo := &mockBookRepository{books: map[string]*Book{"b1": testBook("b1")}}
	cache := newMockCache()
	svc := NewService(repo, nil, cache, zap.NewNop())

	book, err := svc.GetBook(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, 1, repo.getCalls)

	// the async cache fill lands shortly after
	assert.Eventually(t, func() bool {
		_, err := cache.Get(context.Background(), "b1")
		return err == nil
	}, time.Second, 10*time.Millisecond)
}

func TestGetBook_CacheHitSkipsRepository(t *testing.T) {
	repo := &mockBookRepository{books: map[string]*Book{}}
	cache := newMockCache()
	require.NoError(t, cache.Set(context.Background(), testBook("b1")))
	svc := NewService(repo, nil, cache, zap.NewNop())

	book, err := svc.GetBook(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, "b1", book.ID)
	assert.Equal(t, 0, repo.getCalls)
}

func TestGetBook_CacheErrorFallsThrough(t *testing.T) {
	repo := &mockBookRepository{books: map[string]*Book{"b1": testBook("b1")}}
	cache := newMockCache()
	cache.getErr = errors.New("redis down")
	svc := NewService(repo, nil, cache, zap.NewNop())

	book, err := svc.GetBook(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, "b1", book.ID)
}

func TestGetBook_NotFound(t *testing.T) {
	repo := &mockBookRepository{books: map[string]*Book{}}
	svc := NewService(repo, nil, newMockCache(), zap.NewNop())

	_, err := svc.GetBook(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItemRef(t *testing.T) {
	book := testBook("b1")

	ref, err := book.ItemRef()

	require.NoError(t, err)
	assert.Equal(t, "b1", ref.ItemID)
	assert.Equal(t, "Dune", ref.Name)
	assert.Equal(t, "12.5", ref.UnitPrice.String())
}

func TestItemRef_MalformedPrice(t *testing.T) {
	book := testBook("b1")
	book.Price = "twelve"

	_, err := book.ItemRef()
	assert.Error(t, err)
}

func TestItemRef_NegativePrice(t *testing.T) {
	book := testBook("b1")
	book.Price = "-1.00"

	_, err := book.ItemRef()
	assert.Error(t, err)
}

func TestItemRef_SubMinorUnitPrice(t *testing.T) {
	book := testBook("b1")

	// a charge of 10.005 would truncate to 1000 minor units
	book.Price = "10.005"
	_, err := book.ItemRef()
	assert.Error(t, err)

	// trailing zeros beyond two decimals are still an exact amount
	book.Price = "12.500"
	ref, err := book.ItemRef()
	require.NoError(t, err)
	assert.Equal(t, "12.5", ref.UnitPrice.String())
}
