package http

import (
	"time"

	"github.com/intothestar/session-booking-backend/internal/booking"
)

type InitiateBookingRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	DateOfBirth  string `json:"dob" binding:"required,datetime=2006-01-02"`
	BirthHour    int    `json:"tob_hour" binding:"min=0,max=23"`
	BirthMinute  int    `json:"tob_minute" binding:"min=0,max=59"`
	CountryCode  string `json:"country_code" binding:"required"`
	MobileNumber string `json:"mobile_number" binding:"required"`

	SessionDate string `json:"session_date" binding:"required,datetime=2006-01-02"`
	SessionTime string `json:"session_time" binding:"required"`
	TimeZone    string `json:"time_zone" binding:"required,oneof=IST GST"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
}

type InitiateBookingResponse struct {
	BookingID string  `json:"booking_id"`
	OrderRef  string  `json:"order_ref"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

type VerifyBookingResponse struct {
	Status string `json:"status"`
}

type ListBookingsRequest struct {
	Status      string `form:"status" binding:"omitempty,oneof=pending paid failed expired"`
	SessionDate string `form:"session_date" binding:"omitempty,datetime=2006-01-02"`
	Page        int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type ExpireBookingsRequest struct {
	// Window is a Go duration string such as "48h". Empty uses the
	// configured default.
	Window string `json:"window" binding:"omitempty"`
}

type ExpireBookingsResponse struct {
	Expired int `json:"expired"`
}

type BookingResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	DateOfBirth  string    `json:"dob"`
	BirthHour    int       `json:"tob_hour"`
	BirthMinute  int       `json:"tob_minute"`
	CountryCode  string    `json:"country_code"`
	MobileNumber string    `json:"mobile_number"`
	SessionDate  string    `json:"session_date"`
	SessionTime  string    `json:"session_time"`
	TimeZone     string    `json:"time_zone"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	OrderRef     string    `json:"order_ref"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		FirstName:    b.FirstName,
		LastName:     b.LastName,
		Email:        b.Email,
		DateOfBirth:  b.DateOfBirth,
		BirthHour:    b.BirthHour,
		BirthMinute:  b.BirthMinute,
		CountryCode:  b.CountryCode,
		MobileNumber: b.MobileNumber,
		SessionDate:  b.SessionDate,
		SessionTime:  b.SessionTime(),
		TimeZone:     string(b.Profile),
		Amount:       b.Amount,
		Currency:     b.Currency,
		Status:       string(b.Status),
		OrderRef:     b.OrderRef,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
