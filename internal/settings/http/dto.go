package http

import (
	"time"

	"github.com/intothestar/session-booking-backend/internal/settings"
)

type UpdateSettingsRequest struct {
	BaseAmount float64 `json:"base_amount" binding:"required,gt=0"`
}

type SettingsResponse struct {
	BaseAmount   float64    `json:"base_amount"`
	BaseCurrency string     `json:"base_currency"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func NewSettingsResponse(p *settings.PriceSetting) SettingsResponse {
	resp := SettingsResponse{
		BaseAmount:   p.BaseAmount,
		BaseCurrency: p.BaseCurrency,
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = &p.UpdatedAt
	}
	return resp
}
