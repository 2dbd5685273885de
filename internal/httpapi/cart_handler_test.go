package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/catalog"
	"github.com/Aarya06/Bookwizard/internal/session"
)

type stubBookRepository struct {
	catalog.BookRepository
	books map[string]catalog.Book
}

func (s *stubBookRepository) GetByID(ctx context.Context, id string) (*catalog.Book, error) {
	if book, ok := s.books[id]; ok {
		return &book, nil
	}
	return nil, catalog.ErrNotFound
}

func (s *stubBookRepository) Create(ctx context.Context, book *catalog.Book) (string, error) {
	book.ID = "b-new"
	s.books[book.ID] = *book
	return book.ID, nil
}

type stubEbookRepository struct {
	catalog.EbookRepository
}

const testSessionID = "sess-test"

// fixedSessionMiddleware pins every request to one session id so a test can
// observe state across requests.
func fixedSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), "session_id", testSessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func setupCartRouter(t *testing.T, books map[string]catalog.Book) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zap.NewNop()
	sessions := session.NewStore(client)
	catalogSvc := catalog.NewService(&stubBookRepository{books: books}, &stubEbookRepository{}, catalog.NewRedisCache(client), logger)
	handler := NewCartHandler(sessions, catalogSvc, logger)

	r := chi.NewRouter()
	r.Use(fixedSessionMiddleware)
	r.Get("/cart", handler.GetCart)
	r.Delete("/cart", handler.ClearCart)
	r.Post("/cart/items", handler.AddItem)
	r.Put("/cart/items/{item_id}", handler.UpdateQuantity)
	r.Delete("/cart/items/{item_id}", handler.RemoveItem)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, &buf)
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeCart(t *testing.T, recorder *httptest.ResponseRecorder) CartResponseDTO {
	t.Helper()

	var resp CartResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	return resp
}

var testBooks = map[string]catalog.Book{
	"b1": {ID: "b1", Title: "The Go Programming Language", Price: "12.50"},
	"b2": {ID: "b2", Title: "Designing Data-Intensive Applications", Price: "30"},
}

func TestGetCart_EmptySession(t *testing.T) {
	router := setupCartRouter(t, testBooks)

	recorder := doJSON(t, router, "GET", "/cart", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeCart(t, recorder)
	assert.Empty(t, resp.Items)
	assert.Equal(t, "0", resp.Total)
}

func TestAddItem_PersistsAcrossRequests(t *testing.T) {
	router := setupCartRouter(t, testBooks)

	recorder := doJSON(t, router, "POST", "/cart/items", AddItemRequestDTO{ItemID: "b1", Quantity: 2})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = doJSON(t, router, "GET", "/cart", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeCart(t, recorder)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "b1", resp.Items[0].ItemID)
	assert.Equal(t, "The Go Programming Language", resp.Items[0].Name)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, "25", resp.Items[0].Subtotal)
	assert.Equal(t, "25", resp.Total)
}

func TestAddItem_AccumulatesQuantity(t *testing.T) {
	router := setupCartRouter(t, testBooks)

	doJSON(t, router, "POST", "/cart/items", AddItemRequestDTO{ItemID: "b1", Quantity: 1})
	recorder := doJSON(t, router, "POST", "/cart/items", AddItemRequestDTO{ItemID: "b1", Quantity: 3})
	require.Equal(t, http.StatusCreated, recorder.Code)

	resp := decodeCart(t, recorder)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 4, resp.Items[0].Quantity)
	assert.Equal(t, "50", resp.Total)
}

func TestAddItem_UnknownBook(t *testing.T) {
	router := setupCartRouter(t, testBooks)

	recorder := doJSON(t, router, "POST", "/cart/items", AddItemRequestDTO{ItemID: "nope", Quantity: 1})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAddItem_RejectsZeroQuantity(t *testing.T) {
	router := setupCartRouter(t, testBooks)

	recorder := doJSON(t, router, "POST", "/cart/items", AddItemRequestDTO{ItemID: "b1", Quantity: 0})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	router := setupCartRouter(t, testBooks)

	doJSON(t, router, "POST", "/cart/items", AddItemRequestDTO{ItemID: "b1", Quantity: 2})
	doJSON(t, router, "POST", "/cart/items", AddItemRequestDTO{ItemID: "b2", Quantity: 1})

	recorder := doJSON(t, router, "PUT", "/cart/items/b1", UpdateQuantityRequestDTO{Quantity: 0})
	require.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeCart(t, recorder)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "b2", resp.Items[0].ItemID)
	assert.Equal(t, "30", resp.Total)
}

func TestUpdateQuantity_ReplacesQuantity(t *testing.T) {
	router := setupCartRouter(t, testBooks)

	doJSON(t, router, "POST", "/cart/items", AddItemRequestDTO{ItemID: "b2", Quantity: 5})
	recorder := doJSON(t, router, "PUT", "/cart/items/b2", UpdateQuantityRequestDTO{Quantity: 1})

	resp := decodeCart(t, recorder)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Quantity)
	assert.Equal(t, "30", resp.Total)
}

func TestRemoveItem(t *testing.T) {
	router := setupCartRouter(t, testBooks)

	doJSON(t, router, "POST", "/cart/items", AddItemRequestDTO{ItemID: "b1", Quantity: 1})
	recorder := doJSON(t, router, "DELETE", "/cart/items/b1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeCart(t, recorder)
	assert.Empty(t, resp.Items)
}

func TestClearCart(t *testing.T) {
	router := setupCartRouter(t, testBooks)

	doJSON(t, router, "POST", "/cart/items", AddItemRequestDTO{ItemID: "b1", Quantity: 1})
	doJSON(t, router, "POST", "/cart/items", AddItemRequestDTO{ItemID: "b2", Quantity: 2})

	recorder := doJSON(t, router, "DELETE", "/cart", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, "GET", "/cart", nil)
	resp := decodeCart(t, recorder)
	assert.Empty(t, resp.Items)
	assert.Equal(t, "0", resp.Total)
}
