package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/cart"
	"github.com/Aarya06/Bookwizard/internal/checkout"
	"github.com/Aarya06/Bookwizard/internal/payment"
	"github.com/Aarya06/Bookwizard/internal/session"
	"github.com/Aarya06/Bookwizard/internal/user"
)

type CheckoutHandler struct {
	checkout *checkout.Service
	sessions *session.Store
	users    *user.Service
	logger   *zap.Logger
}

func NewCheckoutHandler(checkoutSvc *checkout.Service, sessions *session.Store, users *user.Service, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkoutSvc,
		sessions: sessions,
		users:    users,
		logger:   logger,
	}
}

type CheckoutRequestDTO struct {
	Token     string `json:"token"`
	Address   string `json:"address"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CheckoutResponseDTO struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

// POST /checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r.Context())
	sessionID := getSessionID(r.Context())

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	u, err := h.users.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load buyer", zap.String("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load account")
		return
	}

	// A session that never held a cart checks out as an empty one.
	var c *cart.Cart
	c, err = h.sessions.Cart(r.Context(), sessionID)
	if err != nil && !errors.Is(err, session.ErrNoCart) {
		h.logger.Error("failed to load cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	result, err := h.checkout.Checkout(r.Context(), checkout.Request{
		SessionID: sessionID,
		Cart:      c,
		Token:     req.Token,
		BuyerID:   u.ID,
		Email:     u.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
	})
	if err != nil {
		h.handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderID:   result.OrderID,
		PaymentID: result.PaymentID,
	})
}

// handleCheckoutError maps the checkout error taxonomy onto HTTP statuses.
// Declines carry the processor's message through verbatim so the buyer sees
// what their bank said.
func (h *CheckoutHandler) handleCheckoutError(w http.ResponseWriter, err error) {
	var declined *payment.DeclinedError
	switch {
	case errors.Is(err, checkout.ErrNoActiveCart):
		respondError(w, http.StatusBadRequest, "no_active_cart", "cart is empty")
	case errors.Is(err, checkout.ErrMissingAddress):
		respondError(w, http.StatusBadRequest, "missing_address", "shipping address is required")
	case errors.As(err, &declined):
		respondError(w, http.StatusPaymentRequired, "payment_declined", declined.Message)
	case errors.Is(err, payment.ErrUnreachable):
		respondError(w, http.StatusBadGateway, "payment_unreachable", "payment processor is unreachable, please retry")
	case errors.Is(err, checkout.ErrOrderPersistenceFailed):
		respondError(w, http.StatusInternalServerError, "order_persistence_failed",
			"payment succeeded but the order could not be recorded, contact support")
	default:
		h.logger.Error("checkout failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "checkout failed")
	}
}
