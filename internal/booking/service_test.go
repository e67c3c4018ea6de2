package booking

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intothestar/session-booking-backend/internal/availability"
	"github.com/intothestar/session-booking-backend/internal/currency"
	"github.com/intothestar/session-booking-backend/internal/payment"
	"github.com/intothestar/session-booking-backend/internal/settings"
)

// fakeSlots is an in-memory availability.Service. Claim is guarded by
// the mutex the same way the conditional update guards the real store.
type fakeSlots struct {
	mu    sync.Mutex
	slots map[string]bool // key -> is_booked
}

func newFakeSlots() *fakeSlots {
	return &fakeSlots{slots: make(map[string]bool)}
}

func slotKey(date string, profile availability.Profile, timeOfDay int) string {
	return fmt.Sprintf("%s/%s/%d", date, profile, timeOfDay)
}

func (f *fakeSlots) publish(date string, profile availability.Profile, times ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range times {
		minutes, err := availability.ParseTimeOfDay(t)
		if err != nil {
			panic(err)
		}
		f.slots[slotKey(date, profile, minutes)] = false
	}
}

func (f *fakeSlots) booked(date string, profile availability.Profile, timeOfDay int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[slotKey(date, profile, timeOfDay)]
}

func (f *fakeSlots) Publish(context.Context, availability.PublishRequest) error { return nil }

func (f *fakeSlots) ListAll(context.Context, string) ([]*availability.Slot, error) {
	return nil, nil
}

func (f *fakeSlots) ListFree(context.Context, string) ([]*availability.Slot, error) {
	return nil, nil
}

func (f *fakeSlots) Exists(_ context.Context, date string, profile availability.Profile, timeOfDay int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.slots[slotKey(date, profile, timeOfDay)]
	return ok, nil
}

func (f *fakeSlots) Claim(_ context.Context, date string, profile availability.Profile, timeOfDay int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := slotKey(date, profile, timeOfDay)
	booked, ok := f.slots[key]
	if !ok || booked {
		return availability.ErrSlotUnavailable
	}
	f.slots[key] = true
	return nil
}

func (f *fakeSlots) Release(_ context.Context, date string, profile availability.Profile, timeOfDay int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := slotKey(date, profile, timeOfDay)
	if _, ok := f.slots[key]; ok {
		f.slots[key] = false
	}
	return nil
}

// fakeRepo is an in-memory booking Repository with the same
// compare-and-set semantics as the pgx implementation.
type fakeRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*Booking)}
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	b.ID = fmt.Sprintf("booking-%d", r.seq)
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		copied := *b
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeRepo) SetOrderRef(_ context.Context, id, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.OrderRef = ref
	return nil
}

func (r *fakeRepo) TransitionStatus(_ context.Context, id string, from, to Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *fakeRepo) ListStalePending(_ context.Context, cutoff time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if b.Status == StatusPending && b.CreatedAt.Before(cutoff) {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRepo) backdate(id string, createdAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[id].CreatedAt = createdAt
}

// fakeGateway records orders and lets tests script processor outcomes.
type fakeGateway struct {
	mu         sync.Mutex
	seq        int
	orders     map[string]*payment.Order
	failCreate bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{orders: make(map[string]*payment.Order)}
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount float64, cur, receipt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failCreate {
		return "", fmt.Errorf("processor unavailable")
	}
	g.seq++
	ref := fmt.Sprintf("order-%d", g.seq)
	g.orders[ref] = &payment.Order{
		Ref:      ref,
		Amount:   amount,
		Currency: cur,
		Status:   payment.StatusPending,
		Receipt:  receipt,
	}
	return ref, nil
}

func (g *fakeGateway) GetOrder(_ context.Context, ref string) (*payment.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	order, ok := g.orders[ref]
	if !ok {
		return nil, fmt.Errorf("unknown order %s", ref)
	}
	copied := *order
	return &copied, nil
}

func (g *fakeGateway) settle(ref string, status payment.Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders[ref].Status = status
}

func (g *fakeGateway) setAmount(ref string, amount float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders[ref].Amount = amount
}

// fakeSettings is a mutable price setting so tests can change the base
// amount between bookings.
type fakeSettings struct {
	mu     sync.Mutex
	amount float64
}

func (s *fakeSettings) Get(context.Context) (*settings.PriceSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &settings.PriceSetting{BaseAmount: s.amount, BaseCurrency: "AED"}, nil
}

func (s *fakeSettings) Update(_ context.Context, baseAmount float64) (*settings.PriceSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.amount = baseAmount
	return &settings.PriceSetting{BaseAmount: s.amount, BaseCurrency: "AED"}, nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sends []string
}

func (m *fakeMailer) Send(toEmail, _, _, _, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, toEmail)
	return "msg-id", nil
}

func (m *fakeMailer) sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.sends...)
}

type fixture struct {
	svc     Service
	slots   *fakeSlots
	repo    *fakeRepo
	gateway *fakeGateway
	prices  *fakeSettings
	mail    *fakeMailer
}

func newFixture() *fixture {
	slots := newFakeSlots()
	repo := newFakeRepo()
	gateway := newFakeGateway()
	prices := &fakeSettings{amount: 500}
	mail := &fakeMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	converter := currency.NewConverter(currency.DefaultStaticRates, logger)

	return &fixture{
		svc:     NewService(repo, slots, prices, converter, gateway, mail, "admin@example.com", logger),
		slots:   slots,
		repo:    repo,
		gateway: gateway,
		prices:  prices,
		mail:    mail,
	}
}

func validRequest() InitiateRequest {
	return InitiateRequest{
		FirstName:    "Asha",
		LastName:     "Rao",
		Email:        "asha@example.com",
		DateOfBirth:  "1990-04-12",
		BirthHour:    6,
		BirthMinute:  45,
		CountryCode:  "+91",
		MobileNumber: "9876543210",
		SessionDate:  "2026-02-08",
		SessionTime:  "09:00",
		Profile:      "IST",
		Currency:     "USD",
	}
}

func TestInitiateCreatesPendingSnapshot(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00")

	b, err := f.svc.Initiate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status)
	assert.NotEmpty(t, b.OrderRef)
	assert.Equal(t, "USD", b.Currency)
	assert.InDelta(t, 135.0, b.Amount, 0.001)
	assert.True(t, f.slots.booked("2026-02-08", availability.ProfileIST, 9*60))

	stored, err := f.svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.OrderRef, stored.OrderRef)
}

func TestInitiateUnpublishedTime(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00")

	req := validRequest()
	req.SessionTime = "10:00"

	_, err := f.svc.Initiate(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSlot)

	// Nothing was written and the published slot stays free.
	_, total, listErr := f.svc.List(context.Background(), Filter{})
	require.NoError(t, listErr)
	assert.Zero(t, total)
	assert.False(t, f.slots.booked("2026-02-08", availability.ProfileIST, 9*60))
}

func TestInitiateRejectsBadInput(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00")
	ctx := context.Background()

	req := validRequest()
	req.Profile = "UTC"
	_, err := f.svc.Initiate(ctx, req)
	assert.ErrorIs(t, err, availability.ErrInvalidProfile)

	req = validRequest()
	req.SessionTime = "9am"
	_, err = f.svc.Initiate(ctx, req)
	assert.ErrorIs(t, err, availability.ErrInvalidTime)

	req = validRequest()
	req.SessionDate = "02/08/2026"
	_, err = f.svc.Initiate(ctx, req)
	assert.ErrorIs(t, err, availability.ErrInvalidDate)
}

func TestInitiateConcurrentSameSlot(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00")

	const attempts = 16
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Initiate(context.Background(), validRequest())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		switch {
		case err == nil:
			won++
		default:
			assert.ErrorIs(t, err, availability.ErrSlotUnavailable)
			lost++
		}
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, lost)

	_, total, err := f.svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestInitiateGatewayFailureRollsBack(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00")
	f.gateway.failCreate = true

	_, err := f.svc.Initiate(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentGateway)

	// The claim was rolled back so the slot can be booked again.
	assert.False(t, f.slots.booked("2026-02-08", availability.ProfileIST, 9*60))

	bookings, _, listErr := f.svc.List(context.Background(), Filter{})
	require.NoError(t, listErr)
	require.Len(t, bookings, 1)
	assert.Equal(t, StatusFailed, bookings[0].Status)

	f.gateway.failCreate = false
	b, err := f.svc.Initiate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
}

func TestReconcilePaid(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00")
	ctx := context.Background()

	b, err := f.svc.Initiate(ctx, validRequest())
	require.NoError(t, err)
	f.gateway.settle(b.OrderRef, payment.StatusPaid)

	settled, err := f.svc.Reconcile(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, settled.Status)

	// Paid keeps the slot.
	assert.True(t, f.slots.booked("2026-02-08", availability.ProfileIST, 9*60))

	// Customer confirmation plus admin alert.
	assert.Equal(t, []string{"asha@example.com", "admin@example.com"}, f.mail.sent())
}

func TestReconcilePaidIsIdempotent(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00")
	ctx := context.Background()

	b, err := f.svc.Initiate(ctx, validRequest())
	require.NoError(t, err)
	f.gateway.settle(b.OrderRef, payment.StatusPaid)

	for i := 0; i < 3; i++ {
		settled, err := f.svc.Reconcile(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPaid, settled.Status)
	}

	// Notifications went out exactly once.
	assert.Len(t, f.mail.sent(), 2)
	assert.True(t, f.slots.booked("2026-02-08", availability.ProfileIST, 9*60))
}

func TestReconcileFailedReleasesSlot(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00")
	ctx := context.Background()

	b, err := f.svc.Initiate(ctx, validRequest())
	require.NoError(t, err)
	f.gateway.settle(b.OrderRef, payment.StatusFailed)

	settled, err := f.svc.Reconcile(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, settled.Status)
	assert.False(t, f.slots.booked("2026-02-08", availability.ProfileIST, 9*60))
	assert.Empty(t, f.mail.sent())

	// The freed slot is immediately bookable by someone else. A repeat
	// reconcile of the failed booking must not release their claim.
	b2, err := f.svc.Initiate(ctx, validRequest())
	require.NoError(t, err)

	settled, err = f.svc.Reconcile(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, settled.Status)
	assert.True(t, f.slots.booked("2026-02-08", availability.ProfileIST, 9*60))
	assert.Equal(t, StatusPending, b2.Status)
}

func TestReconcileStillPending(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00")
	ctx := context.Background()

	b, err := f.svc.Initiate(ctx, validRequest())
	require.NoError(t, err)

	settled, err := f.svc.Reconcile(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, settled.Status)
	assert.True(t, f.slots.booked("2026-02-08", availability.ProfileIST, 9*60))
}

func TestReconcileAmountMismatch(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00")
	ctx := context.Background()

	b, err := f.svc.Initiate(ctx, validRequest())
	require.NoError(t, err)
	f.gateway.settle(b.OrderRef, payment.StatusPaid)
	f.gateway.setAmount(b.OrderRef, b.Amount+10)

	_, err = f.svc.Reconcile(ctx, b.ID)
	assert.ErrorIs(t, err, ErrReconciliationMismatch)

	// State is untouched on a mismatch.
	stored, getErr := f.svc.GetByID(ctx, b.ID)
	require.NoError(t, getErr)
	assert.Equal(t, StatusPending, stored.Status)
	assert.True(t, f.slots.booked("2026-02-08", availability.ProfileIST, 9*60))
}

func TestReconcileUnknownBooking(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Reconcile(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPriceChangeDoesNotTouchSnapshot(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00", "10:00")
	ctx := context.Background()

	first, err := f.svc.Initiate(ctx, validRequest())
	require.NoError(t, err)
	assert.InDelta(t, 135.0, first.Amount, 0.001)

	_, err = f.prices.Update(ctx, 1000)
	require.NoError(t, err)

	req := validRequest()
	req.SessionTime = "10:00"
	second, err := f.svc.Initiate(ctx, req)
	require.NoError(t, err)
	assert.InDelta(t, 270.0, second.Amount, 0.001)

	// The earlier snapshot is frozen.
	stored, err := f.svc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.InDelta(t, 135.0, stored.Amount, 0.001)

	// Settlement still reconciles against the old snapshot.
	f.gateway.settle(first.OrderRef, payment.StatusPaid)
	settled, err := f.svc.Reconcile(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, settled.Status)
}

func TestExpireStale(t *testing.T) {
	f := newFixture()
	f.slots.publish("2026-02-08", availability.ProfileIST, "09:00", "10:00", "11:00")
	ctx := context.Background()

	old1, err := f.svc.Initiate(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.SessionTime = "10:00"
	old2, err := f.svc.Initiate(ctx, req)
	require.NoError(t, err)

	req = validRequest()
	req.SessionTime = "11:00"
	fresh, err := f.svc.Initiate(ctx, req)
	require.NoError(t, err)

	// old2 gets paid before the sweep; only old1 should expire.
	f.gateway.settle(old2.OrderRef, payment.StatusPaid)
	_, err = f.svc.Reconcile(ctx, old2.ID)
	require.NoError(t, err)

	f.repo.backdate(old1.ID, time.Now().UTC().Add(-72*time.Hour))
	f.repo.backdate(old2.ID, time.Now().UTC().Add(-72*time.Hour))

	expired, err := f.svc.ExpireStale(ctx, 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	stored, err := f.svc.GetByID(ctx, old1.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, stored.Status)
	assert.False(t, f.slots.booked("2026-02-08", availability.ProfileIST, 9*60))

	stored, err = f.svc.GetByID(ctx, old2.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, stored.Status)
	assert.True(t, f.slots.booked("2026-02-08", availability.ProfileIST, 10*60))

	stored, err = f.svc.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
	assert.True(t, f.slots.booked("2026-02-08", availability.ProfileIST, 11*60))

	// An expired booking is terminal even if the processor later
	// reports it paid.
	f.gateway.settle(old1.OrderRef, payment.StatusPaid)
	settled, err := f.svc.Reconcile(ctx, old1.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, settled.Status)
}
