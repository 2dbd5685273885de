package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/catalog"
	"github.com/Aarya06/Bookwizard/internal/session"
	"github.com/Aarya06/Bookwizard/internal/user"
)

type stubUserDirectory struct {
	user.Repository
	byID map[string]*user.User
}

func (s *stubUserDirectory) GetByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

// setupCatalogRouter wires the full router so the admin gate on catalog
// mutations is exercised exactly as deployed.
func setupCatalogRouter(t *testing.T) (http.Handler, *session.Store) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zap.NewNop()
	sessions := session.NewStore(client)
	catalogSvc := catalog.NewService(&stubBookRepository{books: map[string]catalog.Book{}}, &stubEbookRepository{}, catalog.NewRedisCache(client), logger)
	users := user.NewService(&stubUserDirectory{byID: map[string]*user.User{
		"admin-1": {ID: "admin-1", Email: "owner@example.com"},
		"user-2":  {ID: "user-2", Email: "ada@example.com"},
	}}, &stubDispatcher{}, "http://localhost", "owner@example.com", logger)

	router := NewRouter(sessions, users, Handlers{
		Auth:     NewAuthHandler(users, sessions, logger),
		Cart:     NewCartHandler(sessions, catalogSvc, logger),
		Catalog:  NewCatalogHandler(catalogSvc, logger),
		Checkout: &CheckoutHandler{},
		Orders:   &OrdersHandler{},
		Wishlist: &WishlistHandler{},
		Blog:     &BlogHandler{},
		Event:    &EventHandler{},
		Exchange: &ExchangeHandler{},
		Comment:  &CommentHandler{},
	})
	return router, sessions
}

func doJSONAs(t *testing.T, router http.Handler, sessionID, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, &buf)
	request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionID})
	router.ServeHTTP(recorder, request)
	return recorder
}

func newBookBody() catalog.Book {
	return catalog.Book{Title: "Dune", Author: "Frank Herbert", Price: "12.50"}
}

func TestCreateBook_AnonymousRejected(t *testing.T) {
	router, _ := setupCatalogRouter(t)

	recorder := doJSONAs(t, router, "sess-anon", "POST", "/books", newBookBody())

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateBook_NonAdminRejected(t *testing.T) {
	router, sessions := setupCatalogRouter(t)
	require.NoError(t, sessions.SetUser(context.Background(), "sess-user", "user-2"))

	recorder := doJSONAs(t, router, "sess-user", "POST", "/books", newBookBody())

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestCreateBook_AdminAllowed(t *testing.T) {
	router, sessions := setupCatalogRouter(t)
	require.NoError(t, sessions.SetUser(context.Background(), "sess-admin", "admin-1"))

	recorder := doJSONAs(t, router, "sess-admin", "POST", "/books", newBookBody())

	require.Equal(t, http.StatusCreated, recorder.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.NotEmpty(t, resp["id"])
}

func TestDeleteBook_NonAdminRejected(t *testing.T) {
	router, sessions := setupCatalogRouter(t)
	require.NoError(t, sessions.SetUser(context.Background(), "sess-user", "user-2"))

	recorder := doJSONAs(t, router, "sess-user", "DELETE", "/books/b1", nil)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestCreateEbook_NonAdminRejected(t *testing.T) {
	router, sessions := setupCatalogRouter(t)
	require.NoError(t, sessions.SetUser(context.Background(), "sess-user", "user-2"))

	recorder := doJSONAs(t, router, "sess-user", "POST", "/ebooks", catalog.Ebook{Title: "Dune"})

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestCreateBook_AdminRejectsSubMinorUnitPrice(t *testing.T) {
	router, sessions := setupCatalogRouter(t)
	require.NoError(t, sessions.SetUser(context.Background(), "sess-admin", "admin-1"))

	body := newBookBody()
	body.Price = "10.005"
	recorder := doJSONAs(t, router, "sess-admin", "POST", "/books", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
