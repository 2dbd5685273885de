package checkout

import "errors"

var (
	// ErrNoActiveCart means checkout was attempted with an empty or absent
	// cart. No side effects were performed.
	ErrNoActiveCart = errors.New("no active cart to check out")

	// ErrMissingAddress means the shipping address was empty. No side
	// effects were performed.
	ErrMissingAddress = errors.New("shipping address is required")

	// ErrOrderPersistenceFailed means the processor captured funds but the
	// order record could not be saved. The charge id is logged for manual
	// reconciliation; the cart is left intact.
	ErrOrderPersistenceFailed = errors.New("order not persisted after successful charge")
)
