package http

import (
	"github.com/intothestar/session-booking-backend/internal/availability"
)

type PublishAvailabilityRequest struct {
	Date     string   `json:"date" binding:"required"`
	SlotsIST []string `json:"slots_ist"`
	SlotsGST []string `json:"slots_gst"`
}

type SlotResponse struct {
	Time     string `json:"time"`
	IsBooked bool   `json:"is_booked"`
}

type AvailabilityResponse struct {
	Date     string         `json:"date"`
	SlotsIST []SlotResponse `json:"slots_ist"`
	SlotsGST []SlotResponse `json:"slots_gst"`
}

// NewAvailabilityResponse splits a flat slot list into the per-profile
// arrays the booking widget consumes, preserving ascending time order.
func NewAvailabilityResponse(date string, slots []*availability.Slot) AvailabilityResponse {
	resp := AvailabilityResponse{
		Date:     date,
		SlotsIST: make([]SlotResponse, 0),
		SlotsGST: make([]SlotResponse, 0),
	}

	for _, s := range slots {
		item := SlotResponse{Time: s.Time(), IsBooked: s.IsBooked}
		switch s.Profile {
		case availability.ProfileIST:
			resp.SlotsIST = append(resp.SlotsIST, item)
		case availability.ProfileGST:
			resp.SlotsGST = append(resp.SlotsGST, item)
		}
	}

	return resp
}
