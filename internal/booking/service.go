package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/intothestar/session-booking-backend/internal/availability"
	"github.com/intothestar/session-booking-backend/internal/currency"
	"github.com/intothestar/session-booking-backend/internal/mailer"
	"github.com/intothestar/session-booking-backend/internal/payment"
	"github.com/intothestar/session-booking-backend/internal/settings"
)

// InitiateRequest carries the booking form fields. The price is never
// part of the request: the snapshot is computed server-side from the
// current price setting.
type InitiateRequest struct {
	FirstName    string
	LastName     string
	Email        string
	DateOfBirth  string
	BirthHour    int
	BirthMinute  int
	CountryCode  string
	MobileNumber string

	SessionDate string
	SessionTime string // HH:MM
	Profile     string // IST or GST
	Currency    string // target currency, empty means base
}

type Service interface {
	Initiate(ctx context.Context, req InitiateRequest) (*Booking, error)
	Reconcile(ctx context.Context, id string) (*Booking, error)
	ExpireStale(ctx context.Context, window time.Duration) (int, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type service struct {
	repo       Repository
	slots      availability.Service
	prices     settings.Service
	converter  currency.Converter
	gateway    payment.Gateway
	mail       mailer.Mailer
	adminEmail string
	logger     *slog.Logger
}

func NewService(
	repo Repository,
	slots availability.Service,
	prices settings.Service,
	converter currency.Converter,
	gateway payment.Gateway,
	mail mailer.Mailer,
	adminEmail string,
	logger *slog.Logger,
) Service {
	return &service{
		repo:       repo,
		slots:      slots,
		prices:     prices,
		converter:  converter,
		gateway:    gateway,
		mail:       mail,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Initiate claims a slot and opens a payment order as one logical
// transaction: any failure after the claim releases the slot again, so
// a booking is never left pending against a slot it does not hold.
func (s *service) Initiate(ctx context.Context, req InitiateRequest) (*Booking, error) {
	profile, err := availability.ParseProfile(req.Profile)
	if err != nil {
		return nil, err
	}
	timeOfDay, err := availability.ParseTimeOfDay(req.SessionTime)
	if err != nil {
		return nil, err
	}
	if err := availability.ValidateDate(req.SessionDate); err != nil {
		return nil, err
	}

	// Precondition: the time must be in the published slot list.
	exists, err := s.slots.Exists(ctx, req.SessionDate, profile, timeOfDay)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrInvalidSlot
	}

	// Price snapshot: base setting through the converter, fixed here
	// and never recomputed.
	price, err := s.prices.Get(ctx)
	if err != nil {
		return nil, err
	}
	amount, cur := s.converter.Convert(ctx, price.BaseAmount, price.BaseCurrency, req.Currency)

	// The claim is the single mutual-exclusion point. Losing the race
	// surfaces as-is: the client must pick another slot.
	if err := s.slots.Claim(ctx, req.SessionDate, profile, timeOfDay); err != nil {
		return nil, err
	}

	b := &Booking{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		DateOfBirth:  req.DateOfBirth,
		BirthHour:    req.BirthHour,
		BirthMinute:  req.BirthMinute,
		CountryCode:  req.CountryCode,
		MobileNumber: req.MobileNumber,
		SessionDate:  req.SessionDate,
		Profile:      profile,
		TimeOfDay:    timeOfDay,
		Amount:       amount,
		Currency:     cur,
		Status:       StatusPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.release(ctx, b)
		return nil, err
	}

	orderRef, err := s.gateway.CreateOrder(ctx, b.Amount, b.Currency, b.ID)
	if err != nil {
		s.logger.Error("payment order open failed, rolling back claim",
			"booking_id", b.ID, "error", err)
		s.compensate(ctx, b)
		return nil, ErrPaymentGateway
	}

	if err := s.repo.SetOrderRef(ctx, b.ID, orderRef); err != nil {
		s.logger.Error("persisting order ref failed, rolling back claim",
			"booking_id", b.ID, "order_ref", orderRef, "error", err)
		s.compensate(ctx, b)
		return nil, ErrPaymentGateway
	}
	b.OrderRef = orderRef

	return b, nil
}

// compensate marks a booking failed and frees its slot after the
// order-opening half of initiate fell over.
func (s *service) compensate(ctx context.Context, b *Booking) {
	if _, err := s.repo.TransitionStatus(ctx, b.ID, StatusPending, StatusFailed); err != nil {
		s.logger.Error("rollback: marking booking failed errored", "booking_id", b.ID, "error", err)
	}
	s.release(ctx, b)
}

func (s *service) release(ctx context.Context, b *Booking) {
	if err := s.slots.Release(ctx, b.SessionDate, b.Profile, b.TimeOfDay); err != nil {
		s.logger.Error("releasing slot failed",
			"date", b.SessionDate, "profile", b.Profile, "time", b.SessionTime(), "error", err)
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}
