package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/intothestar/session-booking-backend/internal/booking"
	"github.com/intothestar/session-booking-backend/internal/pkg/request"
	"github.com/intothestar/session-booking-backend/internal/pkg/response"
)

type Handler struct {
	service       booking.Service
	defaultExpiry time.Duration
}

func NewHandler(service booking.Service, defaultExpiry time.Duration) *Handler {
	return &Handler{
		service:       service,
		defaultExpiry: defaultExpiry,
	}
}

// Initiate validates the booking form, claims the slot and opens the
// payment order.
func (h *Handler) Initiate(c *gin.Context) {
	var body InitiateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := booking.InitiateRequest{
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Email:        body.Email,
		DateOfBirth:  body.DateOfBirth,
		BirthHour:    body.BirthHour,
		BirthMinute:  body.BirthMinute,
		CountryCode:  body.CountryCode,
		MobileNumber: body.MobileNumber,
		SessionDate:  body.SessionDate,
		SessionTime:  body.SessionTime,
		Profile:      body.TimeZone,
		Currency:     body.Currency,
	}

	b, err := h.service.Initiate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, InitiateBookingResponse{
		BookingID: b.ID,
		OrderRef:  b.OrderRef,
		Amount:    b.Amount,
		Currency:  b.Currency,
	})
}

// Verify triggers reconciliation for a booking. The body is ignored on
// purpose: the processor lookup is authoritative, not the caller.
func (h *Handler) Verify(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.Reconcile(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, VerifyBookingResponse{Status: string(b.Status)})
}

// Get returns one booking (admin).
func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// List returns bookings newest-first (admin).
func (h *Handler) List(c *gin.Context) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{
		Status:      query.Status,
		SessionDate: query.SessionDate,
		Page:        query.Page,
		PageSize:    query.PageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

// Expire is the hook the external sweep scheduler calls.
func (h *Handler) Expire(c *gin.Context) {
	var body ExpireBookingsRequest
	if err := c.ShouldBindJSON(&body); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	window := h.defaultExpiry
	if body.Window != "" {
		parsed, err := time.ParseDuration(body.Window)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window duration"})
			return
		}
		window = parsed
	}

	expired, err := h.service.ExpireStale(c.Request.Context(), window)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpireBookingsResponse{Expired: expired})
}
