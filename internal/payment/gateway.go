package payment

import (
	"context"
)

// Status is the processor's authoritative view of an order.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Order is the processor-side record for a booking's payment.
type Order struct {
	Ref      string
	Amount   float64
	Currency string
	Status   Status
	Receipt  string
}

// Gateway talks to the external payment processor. Calls are
// synchronous with a bounded timeout; a timeout is just another error
// and triggers the same rollback as a rejection.
type Gateway interface {
	// CreateOrder opens an order scoped to one booking (the receipt)
	// and returns the processor's opaque order reference.
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (string, error)

	// GetOrder fetches the authoritative state of an order. This is
	// the only source reconciliation trusts; a client-asserted "I
	// paid" never flips booking state on its own.
	GetOrder(ctx context.Context, ref string) (*Order, error)
}
