package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Aarya06/Bookwizard/internal/session"
	"github.com/Aarya06/Bookwizard/internal/user"
)

// Handlers bundles every route handler the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Cart     *CartHandler
	Catalog  *CatalogHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
	Wishlist *WishlistHandler
	Blog     *BlogHandler
	Event    *EventHandler
	Exchange *ExchangeHandler
	Comment  *CommentHandler
}

func NewRouter(sessions *session.Store, users *user.Service, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(SessionMiddleware)
	r.Use(CurrentUserMiddleware(sessions))

	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.Catalog.ListBooks)
		r.Get("/bestsellers", h.Catalog.Bestsellers)
		r.Get("/search", h.Catalog.SearchBooks)
		r.Get("/category/{category}", h.Catalog.BooksByCategory)
		r.Get("/{id}", h.Catalog.GetBook)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(users))
			r.Post("/", h.Catalog.CreateBook)
			r.Put("/{id}", h.Catalog.UpdateBook)
			r.Delete("/{id}", h.Catalog.DeleteBook)
		})
	})

	r.Route("/ebooks", func(r chi.Router) {
		r.Get("/", h.Catalog.ListEbooks)
		r.Get("/search", h.Catalog.SearchEbooks)
		r.Get("/category/{category}", h.Catalog.EbooksByCategory)
		r.Get("/{id}", h.Catalog.GetEbook)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(users))
			r.Post("/", h.Catalog.CreateEbook)
			r.Delete("/{id}", h.Catalog.DeleteEbook)
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Cart.GetCart)
		r.Delete("/", h.Cart.ClearCart)
		r.Post("/items", h.Cart.AddItem)
		r.Put("/items/{item_id}", h.Cart.UpdateQuantity)
		r.Delete("/items/{item_id}", h.Cart.RemoveItem)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireLogin)
		r.Post("/checkout", h.Checkout.Checkout)
		r.Get("/orders", h.Orders.ListOrders)
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Use(RequireLogin)
		r.Get("/", h.Wishlist.List)
		r.Post("/", h.Wishlist.Add)
		r.Delete("/{book_id}", h.Wishlist.Remove)
	})

	r.Post("/register", h.Auth.Register)
	r.Post("/login", h.Auth.Login)
	r.Post("/logout", h.Auth.Logout)
	r.Get("/verify/{token}", h.Auth.Verify)
	r.With(RequireLogin).Get("/me", h.Auth.Me)

	r.Route("/blog", func(r chi.Router) {
		r.Get("/", h.Blog.List)
		r.Get("/{id}", h.Blog.Get)

		r.Group(func(r chi.Router) {
			r.Use(RequireLogin)
			r.Post("/", h.Blog.Create)
			r.Put("/{id}", h.Blog.Update)
			r.Delete("/{id}", h.Blog.Delete)
		})
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.Event.List)
		r.Get("/{id}", h.Event.Get)

		r.Group(func(r chi.Router) {
			r.Use(RequireLogin)
			r.Post("/", h.Event.Create)
			r.Put("/{id}", h.Event.Update)
			r.Delete("/{id}", h.Event.Delete)
		})
	})

	r.Route("/exchange", func(r chi.Router) {
		r.Get("/", h.Exchange.List)
		r.Get("/{id}", h.Exchange.Get)

		r.Group(func(r chi.Router) {
			r.Use(RequireLogin)
			r.Post("/", h.Exchange.Create)
			r.Delete("/{id}", h.Exchange.Delete)
		})
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/{parent_type}/{parent_id}", h.Comment.ListByParent)

		r.Group(func(r chi.Router) {
			r.Use(RequireLogin)
			r.Post("/{parent_type}/{parent_id}", h.Comment.Create)
			r.Delete("/{id}", h.Comment.Delete)
		})
	})

	return r
}
