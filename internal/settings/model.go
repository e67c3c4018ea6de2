package settings

import (
	"net/http"
	"time"

	"github.com/intothestar/session-booking-backend/internal/pkg/apperror"
)

var ErrInvalidAmount = apperror.New(http.StatusBadRequest, "base amount must be greater than zero")

// Defaults used before the admin ever saves a price.
const (
	DefaultBaseAmount   = 500.0
	DefaultBaseCurrency = "AED"
)

// PriceSetting is the process-wide base session price. It is read at
// booking time to build the price snapshot; changing it never touches
// existing bookings.
type PriceSetting struct {
	BaseAmount   float64
	BaseCurrency string
	UpdatedAt    time.Time
}
