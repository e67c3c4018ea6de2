package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intothestar/session-booking-backend/internal/availability"
	"github.com/intothestar/session-booking-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// GetFree returns the bookable slots for a date, per timezone profile.
func (h *Handler) GetFree(c *gin.Context) {
	date := c.Param("date")

	slots, err := h.service.ListFree(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(date, slots))
}

// GetAll returns the full slot set for a date, booked slots included.
func (h *Handler) GetAll(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	slots, err := h.service.ListAll(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(date, slots))
}

// Publish replaces the full slot set for a date.
func (h *Handler) Publish(c *gin.Context) {
	var body PublishAvailabilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := availability.PublishRequest{
		Date: body.Date,
		Slots: map[availability.Profile][]string{
			availability.ProfileIST: body.SlotsIST,
			availability.ProfileGST: body.SlotsGST,
		},
	}

	if err := h.service.Publish(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "availability updated"})
}
