package payment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// DevGateway is the in-process gateway used when no processor keys are
// configured. Every order auto-settles as paid so local booking flows
// can complete end to end.
type DevGateway struct {
	logger *slog.Logger

	mu     sync.Mutex
	seq    int
	orders map[string]*Order
}

func NewDevGateway(logger *slog.Logger) *DevGateway {
	return &DevGateway{
		logger: logger,
		orders: make(map[string]*Order),
	}
}

func (g *DevGateway) CreateOrder(_ context.Context, amount float64, currency, receipt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	ref := fmt.Sprintf("dev_order_%06d", g.seq)
	g.orders[ref] = &Order{
		Ref:      ref,
		Amount:   amount,
		Currency: currency,
		Status:   StatusPaid,
		Receipt:  receipt,
	}

	g.logger.Info("dev gateway order created", "ref", ref, "amount", amount, "currency", currency)
	return ref, nil
}

func (g *DevGateway) GetOrder(_ context.Context, ref string) (*Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.orders[ref]
	if !ok {
		return nil, fmt.Errorf("unknown order %s", ref)
	}
	copied := *order
	return &copied, nil
}
