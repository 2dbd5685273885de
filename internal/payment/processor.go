package payment

import (
	"context"
	"errors"
)

// Processor is the external payment boundary. Amounts are expressed in the
// processor's minor currency unit (e.g. cents, paise).
type Processor interface {
	Charge(ctx context.Context, amountMinor int64, currency, token string) (string, error)
}

// DeclinedError carries the processor's own message so it can be shown to
// the buyer verbatim.
type DeclinedError struct {
	Message string
}

func (e *DeclinedError) Error() string {
	return e.Message
}

// ErrUnreachable reports a transport failure before the processor produced
// a decision about the charge.
var ErrUnreachable = errors.New("payment processor unreachable")
