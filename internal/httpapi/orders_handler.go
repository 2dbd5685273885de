package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/order"
)

type OrdersHandler struct {
	orders order.Repository
	logger *zap.Logger
}

func NewOrdersHandler(orders order.Repository, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		orders: orders,
		logger: logger,
	}
}

// GET /orders lists the logged-in buyer's order history, newest first.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListByBuyer(r.Context(), getUserID(r.Context()))
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}
