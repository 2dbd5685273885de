package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/cart"
	"github.com/Aarya06/Bookwizard/internal/catalog"
	"github.com/Aarya06/Bookwizard/internal/session"
)

type CartHandler struct {
	sessions *session.Store
	catalog  *catalog.Service
	logger   *zap.Logger
}

func NewCartHandler(sessions *session.Store, catalogSvc *catalog.Service, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  catalogSvc,
		logger:   logger,
	}
}

type AddItemRequestDTO struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartLineDTO struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type CartResponseDTO struct {
	Items []CartLineDTO `json:"items"`
	Total string        `json:"total"`
}

func toCartResponse(c *cart.Cart) CartResponseDTO {
	resp := CartResponseDTO{
		Items: make([]CartLineDTO, 0, c.Len()),
		Total: c.TotalPrice().String(),
	}
	for line := range c.Items() {
		resp.Items = append(resp.Items, CartLineDTO{
			ItemID:    line.Item.ItemID,
			Name:      line.Item.Name,
			UnitPrice: line.Item.UnitPrice.String(),
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal().String(),
		})
	}
	return resp
}

// loadCart returns the session's cart, or a fresh empty cart when the
// session has none yet.
func (h *CartHandler) loadCart(r *http.Request) (*cart.Cart, error) {
	c, err := h.sessions.Cart(r.Context(), getSessionID(r.Context()))
	if errors.Is(err, session.ErrNoCart) {
		return cart.New(), nil
	}
	return c, err
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.loadCart(r)
	if err != nil {
		h.logger.Error("failed to load cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	book, err := h.catalog.GetBook(r.Context(), req.ItemID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "book not found")
			return
		}
		h.logger.Error("failed to load book", zap.String("book_id", req.ItemID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load book")
		return
	}

	item, err := book.ItemRef()
	if err != nil {
		h.logger.Error("book rejected at cart boundary", zap.String("book_id", book.ID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "book cannot be added to cart")
		return
	}

	c, err := h.loadCart(r)
	if err != nil {
		h.logger.Error("failed to load cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	c.Add(item, req.Quantity)
	if err := h.sessions.PutCart(r.Context(), getSessionID(r.Context()), c); err != nil {
		h.logger.Error("failed to store cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to store cart")
		return
	}

	respondJSON(w, http.StatusCreated, toCartResponse(c))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.loadCart(r)
	if err != nil {
		h.logger.Error("failed to load cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	// A quantity below one removes the line.
	c.SetQuantity(itemID, req.Quantity)
	if err := h.sessions.PutCart(r.Context(), getSessionID(r.Context()), c); err != nil {
		h.logger.Error("failed to store cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to store cart")
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	c, err := h.loadCart(r)
	if err != nil {
		h.logger.Error("failed to load cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	c.Remove(itemID)
	if err := h.sessions.PutCart(r.Context(), getSessionID(r.Context()), c); err != nil {
		h.logger.Error("failed to store cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to store cart")
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(r.Context(), getSessionID(r.Context())); err != nil {
		h.logger.Error("failed to clear cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(cart.New()))
}
