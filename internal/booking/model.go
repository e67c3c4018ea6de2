package booking

import (
	"net/http"
	"time"

	"github.com/intothestar/session-booking-backend/internal/availability"
	"github.com/intothestar/session-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "booking not found")

	// ErrInvalidSlot means the requested time is not in the published
	// slot list at all, as opposed to published-but-taken.
	ErrInvalidSlot = apperror.New(http.StatusBadRequest, "requested time is not available for booking")

	// ErrPaymentGateway is deliberately terse: processor details stay
	// in the logs, the user just needs to retry.
	ErrPaymentGateway = apperror.New(http.StatusBadGateway, "booking failed, please try again")

	// ErrReconciliationMismatch flags processor data that does not
	// line up with the booking. State is never flipped on a mismatch.
	ErrReconciliationMismatch = apperror.New(http.StatusConflict, "payment record does not match booking")
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
	StatusExpired Status = "expired"
)

// Terminal reports whether a status can never transition again.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusExpired
}

// Booking is the durable ledger record for one reserved session slot.
// Amount and Currency are a snapshot taken at creation; later price
// setting changes never touch them.
type Booking struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	DateOfBirth  string // YYYY-MM-DD
	BirthHour    int
	BirthMinute  int
	CountryCode  string
	MobileNumber string

	SessionDate string // YYYY-MM-DD
	Profile     availability.Profile
	TimeOfDay   int // minutes since midnight

	Amount   float64
	Currency string
	Status   Status
	OrderRef string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionTime returns the session time formatted as HH:MM.
func (b *Booking) SessionTime() string {
	return availability.FormatTimeOfDay(b.TimeOfDay)
}

type Filter struct {
	Status      string
	SessionDate string
	Page        int
	PageSize    int
}
