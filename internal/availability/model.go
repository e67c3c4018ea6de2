package availability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/intothestar/session-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidDate    = apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	ErrInvalidTime    = apperror.New(http.StatusBadRequest, "invalid slot time, expected HH:MM")
	ErrInvalidProfile = apperror.New(http.StatusBadRequest, "invalid timezone profile, expected IST or GST")
	ErrDuplicateSlot  = apperror.New(http.StatusBadRequest, "duplicate slot time for the same profile")

	// ErrSlotUnavailable means the claim race was lost: the slot exists
	// but is already booked. The caller must prompt re-selection.
	ErrSlotUnavailable = apperror.New(http.StatusConflict, "slot is no longer available")
)

// Profile is the timezone profile a slot is published under.
type Profile string

const (
	ProfileIST Profile = "IST"
	ProfileGST Profile = "GST"
)

// Profiles lists all supported timezone profiles in display order.
var Profiles = []Profile{ProfileIST, ProfileGST}

// ParseProfile validates a timezone profile string.
func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case ProfileIST:
		return ProfileIST, nil
	case ProfileGST:
		return ProfileGST, nil
	default:
		return "", ErrInvalidProfile
	}
}

// Slot is a single bookable time unit for one date and timezone
// profile. Identity is (Date, Profile, TimeOfDay); slots are created in
// bulk by Publish and only ever toggled, never deleted individually.
type Slot struct {
	Date      string // YYYY-MM-DD
	Profile   Profile
	TimeOfDay int // minutes since midnight
	IsBooked  bool
	UpdatedAt time.Time
}

// Time returns the slot time formatted as HH:MM.
func (s *Slot) Time() string {
	return FormatTimeOfDay(s.TimeOfDay)
}

// ParseTimeOfDay parses a strict HH:MM string into minutes since
// midnight.
func ParseTimeOfDay(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &h, &m); err != nil || len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTime
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrInvalidTime
	}
	return h*60 + m, nil
}

// FormatTimeOfDay renders minutes since midnight as HH:MM.
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ErrInvalidDate
	}
	return nil
}
