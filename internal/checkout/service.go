package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/cart"
	"github.com/Aarya06/Bookwizard/internal/mail"
	"github.com/Aarya06/Bookwizard/internal/order"
	"github.com/Aarya06/Bookwizard/internal/payment"
)

// minorUnitFactor converts a price into the processor's minor currency
// unit (e.g. rupees to paise, dollars to cents).
const minorUnitFactor = 100

// OrderStore persists order snapshots.
type OrderStore interface {
	Save(ctx context.Context, snap *order.Snapshot) (string, error)
}

// CartStore clears the session's cart after a persisted checkout.
type CartStore interface {
	Clear(ctx context.Context, sessionID string) error
}

// Service turns a cart plus a payment token into a persisted order.
//
// The pipeline per attempt is strictly ordered: validate, charge, persist,
// clear cart, notify. Persistence follows only a successful charge and
// cart-clearing follows only successful persistence; reversing either step
// risks charging without an order record or losing a cart that was never
// charged.
type Service struct {
	payments payment.Processor
	orders   OrderStore
	carts    CartStore
	mailer   mail.Dispatcher
	currency string
	logger   *zap.Logger
}

func NewService(payments payment.Processor, orders OrderStore, carts CartStore, mailer mail.Dispatcher, currency string, logger *zap.Logger) *Service {
	return &Service{
		payments: payments,
		orders:   orders,
		carts:    carts,
		mailer:   mailer,
		currency: currency,
		logger:   logger,
	}
}

// Request carries everything a checkout attempt needs. The cart is the
// session's current cart, already loaded by the caller.
type Request struct {
	SessionID string
	Cart      *cart.Cart
	Token     string
	BuyerID   string
	Email     string
	FirstName string
	LastName  string
	Address   string
}

type Result struct {
	OrderID   string
	PaymentID string
}

// Checkout runs one checkout attempt. Payment failures are returned as-is
// (*payment.DeclinedError or payment.ErrUnreachable) with the cart left
// untouched for a retry. A persistence failure after a successful charge is
// returned as ErrOrderPersistenceFailed and logged loudly; the cart is not
// cleared on that path either. Notification failures are logged only.
func (s *Service) Checkout(ctx context.Context, req Request) (*Result, error) {
	if req.Cart == nil || req.Cart.IsEmpty() {
		return nil, ErrNoActiveCart
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, ErrMissingAddress
	}

	amountMinor := req.Cart.TotalPrice().Mul(decimal.NewFromInt(minorUnitFactor)).IntPart()
	paymentID, err := s.payments.Charge(ctx, amountMinor, s.currency, req.Token)
	if err != nil {
		// Nothing was persisted; the buyer may retry with the same cart.
		return nil, err
	}

	snap := order.NewSnapshot(req.BuyerID, req.Cart, s.currency, req.Address, req.FirstName, req.LastName, paymentID)
	orderID, err := s.orders.Save(ctx, snap)
	if err != nil {
		// Funds are captured but no order record exists. There is no
		// compensating refund here; flag for manual reconciliation.
		s.logger.Error("order persistence failed after successful charge",
			zap.String("payment_id", paymentID),
			zap.String("buyer_id", req.BuyerID),
			zap.String("amount_minor", fmt.Sprint(amountMinor)),
			zap.String("currency", s.currency),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistenceFailed, err)
	}

	// Clearing strictly follows successful persistence.
	if err := s.carts.Clear(ctx, req.SessionID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("session_id", req.SessionID),
			zap.String("order_id", orderID),
			zap.Error(err))
	}

	if err := s.mailer.Send(ctx, req.Email, "Your bookwizard order is confirmed", confirmationBody(snap, orderID)); err != nil {
		// The purchase already succeeded; never surface this to the buyer.
		s.logger.Warn("order confirmation mail failed",
			zap.String("order_id", orderID),
			zap.Error(err))
	}

	return &Result{OrderID: orderID, PaymentID: paymentID}, nil
}

func confirmationBody(snap *order.Snapshot, orderID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order %s.\n\n", snap.FirstName, orderID)
	for _, line := range snap.Lines {
		fmt.Fprintf(&b, "  %s x%d: %s %s\n", line.Name, line.Quantity, line.Subtotal, snap.Currency)
	}
	fmt.Fprintf(&b, "\nTotal: %s %s\nShipping to: %s\n", snap.Total, snap.Currency, snap.Address)
	return b.String()
}
