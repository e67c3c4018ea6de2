package booking

import (
	"context"
	"math"
	"time"

	"github.com/intothestar/session-booking-backend/internal/payment"
)

// Reconcile settles a booking against the processor's own record. It
// is idempotent: a booking that is already paid returns success with
// no side effects, and concurrent reconciles are serialized by the
// compare-and-set on status. The inbound verification signal is only a
// hint; the processor lookup is what decides.
func (s *service) Reconcile(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status.Terminal() {
		return b, nil
	}

	if b.OrderRef == "" {
		// A pending booking always carries an order ref; anything else
		// means the ledger and the processor disagree.
		s.logger.Error("reconcile: pending booking has no order ref", "booking_id", b.ID)
		return nil, ErrReconciliationMismatch
	}

	order, err := s.gateway.GetOrder(ctx, b.OrderRef)
	if err != nil {
		s.logger.Error("reconcile: order lookup failed",
			"booking_id", b.ID, "order_ref", b.OrderRef, "error", err)
		return nil, ErrPaymentGateway
	}

	if order.Currency != b.Currency || math.Abs(order.Amount-b.Amount) > 0.009 {
		s.logger.Error("reconcile: order does not match booking snapshot",
			"booking_id", b.ID, "order_ref", b.OrderRef,
			"order_amount", order.Amount, "order_currency", order.Currency,
			"booking_amount", b.Amount, "booking_currency", b.Currency)
		return nil, ErrReconciliationMismatch
	}

	switch order.Status {
	case payment.StatusPaid:
		ok, err := s.repo.TransitionStatus(ctx, b.ID, StatusPending, StatusPaid)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Lost a concurrent transition; whatever won is the truth.
			return s.repo.GetByID(ctx, b.ID)
		}
		b.Status = StatusPaid
		s.sendPaidNotifications(b)
		return b, nil

	case payment.StatusFailed:
		ok, err := s.repo.TransitionStatus(ctx, b.ID, StatusPending, StatusFailed)
		if err != nil {
			return nil, err
		}
		if !ok {
			return s.repo.GetByID(ctx, b.ID)
		}
		b.Status = StatusFailed
		s.release(ctx, b)
		return b, nil

	default:
		// Still unpaid at the processor. Pending stays pending; the
		// expiry sweep owns abandonment.
		return b, nil
	}
}

// ExpireStale transitions pending bookings older than the window to
// expired and frees their slots. Scheduling is the caller's problem;
// this is just the release path the external sweeper invokes.
func (s *service) ExpireStale(ctx context.Context, window time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-window)

	stale, err := s.repo.ListStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, b := range stale {
		ok, err := s.repo.TransitionStatus(ctx, b.ID, StatusPending, StatusExpired)
		if err != nil {
			s.logger.Error("expire: transition failed", "booking_id", b.ID, "error", err)
			continue
		}
		if !ok {
			// Settled by a reconcile between the list and the CAS.
			continue
		}
		b.Status = StatusExpired
		s.release(ctx, b)
		expired++
	}

	return expired, nil
}
