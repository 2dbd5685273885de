package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Service
	logger  *zap.Logger
}

func NewCatalogHandler(catalogSvc *catalog.Service, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogSvc,
		logger:  logger,
	}
}

func (h *CatalogHandler) listResponse(w http.ResponseWriter, data interface{}, err error, what string) {
	if err != nil {
		h.logger.Error("failed to list "+what, zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list "+what)
		return
	}
	respondJSON(w, http.StatusOK, data)
}

func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.ListBooks(r.Context())
	h.listResponse(w, books, err, "books")
}

func (h *CatalogHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.catalog.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "book not found")
			return
		}
		h.logger.Error("failed to get book", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get book")
		return
	}
	respondJSON(w, http.StatusOK, book)
}

func (h *CatalogHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("q")
	if prefix == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "query parameter q is required")
		return
	}
	books, err := h.catalog.SearchBooks(r.Context(), prefix)
	h.listResponse(w, books, err, "books")
}

func (h *CatalogHandler) BooksByCategory(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.BooksByCategory(r.Context(), chi.URLParam(r, "category"))
	h.listResponse(w, books, err, "books")
}

func (h *CatalogHandler) Bestsellers(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.Bestsellers(r.Context())
	h.listResponse(w, books, err, "books")
}

func (h *CatalogHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var book catalog.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if book.Title == "" || book.Price == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "title and price are required")
		return
	}
	// Reject prices the cart boundary would refuse later.
	if _, err := book.ItemRef(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be a non-negative amount with at most two decimal places")
		return
	}

	id, err := h.catalog.CreateBook(r.Context(), &book)
	if err != nil {
		h.logger.Error("failed to create book", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create book")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *CatalogHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var book catalog.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	book.ID = chi.URLParam(r, "id")
	if book.Price != "" {
		if _, err := book.ItemRef(); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_price", "price must be a non-negative amount with at most two decimal places")
			return
		}
	}

	if err := h.catalog.UpdateBook(r.Context(), &book); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "book not found")
			return
		}
		h.logger.Error("failed to update book", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update book")
		return
	}
	respondJSON(w, http.StatusOK, book)
}

func (h *CatalogHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "book not found")
			return
		}
		h.logger.Error("failed to delete book", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete book")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) ListEbooks(w http.ResponseWriter, r *http.Request) {
	ebooks, err := h.catalog.ListEbooks(r.Context())
	h.listResponse(w, ebooks, err, "ebooks")
}

func (h *CatalogHandler) GetEbook(w http.ResponseWriter, r *http.Request) {
	ebook, err := h.catalog.GetEbook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "ebook not found")
			return
		}
		h.logger.Error("failed to get ebook", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get ebook")
		return
	}
	respondJSON(w, http.StatusOK, ebook)
}

func (h *CatalogHandler) SearchEbooks(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("q")
	if prefix == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "query parameter q is required")
		return
	}
	ebooks, err := h.catalog.SearchEbooks(r.Context(), prefix)
	h.listResponse(w, ebooks, err, "ebooks")
}

func (h *CatalogHandler) EbooksByCategory(w http.ResponseWriter, r *http.Request) {
	ebooks, err := h.catalog.EbooksByCategory(r.Context(), chi.URLParam(r, "category"))
	h.listResponse(w, ebooks, err, "ebooks")
}

func (h *CatalogHandler) CreateEbook(w http.ResponseWriter, r *http.Request) {
	var ebook catalog.Ebook
	if err := json.NewDecoder(r.Body).Decode(&ebook); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if ebook.Title == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}

	id, err := h.catalog.CreateEbook(r.Context(), &ebook)
	if err != nil {
		h.logger.Error("failed to create ebook", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create ebook")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *CatalogHandler) DeleteEbook(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteEbook(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "ebook not found")
			return
		}
		h.logger.Error("failed to delete ebook", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete ebook")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
