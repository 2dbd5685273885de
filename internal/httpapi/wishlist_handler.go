package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/catalog"
	"github.com/Aarya06/Bookwizard/internal/wishlist"
)

type WishlistHandler struct {
	wishlists wishlist.Repository
	catalog   *catalog.Service
	logger    *zap.Logger
}

func NewWishlistHandler(wishlists wishlist.Repository, catalogSvc *catalog.Service, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlists: wishlists,
		catalog:   catalogSvc,
		logger:    logger,
	}
}

type AddWishlistRequestDTO struct {
	BookID string `json:"book_id"`
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.wishlists.ListByUser(r.Context(), getUserID(r.Context()))
	if err != nil {
		h.logger.Error("failed to list wishlist", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list wishlist")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.BookID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "book_id is required")
		return
	}

	// Only real books go on a wishlist.
	if _, err := h.catalog.GetBook(r.Context(), req.BookID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "book not found")
			return
		}
		h.logger.Error("failed to load book", zap.String("book_id", req.BookID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load book")
		return
	}

	if err := h.wishlists.Add(r.Context(), getUserID(r.Context()), req.BookID); err != nil {
		h.logger.Error("failed to add wishlist entry", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add wishlist entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	err := h.wishlists.Remove(r.Context(), getUserID(r.Context()), chi.URLParam(r, "book_id"))
	if err != nil {
		if errors.Is(err, wishlist.ErrEntryNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "book is not on the wishlist")
			return
		}
		h.logger.Error("failed to remove wishlist entry", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove wishlist entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
