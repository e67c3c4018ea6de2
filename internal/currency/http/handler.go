package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intothestar/session-booking-backend/internal/currency"
	"github.com/intothestar/session-booking-backend/internal/settings"
)

type Handler struct {
	converter       currency.Converter
	settingsService settings.Service
}

func NewHandler(converter currency.Converter, settingsService settings.Service) *Handler {
	return &Handler{converter: converter, settingsService: settingsService}
}

// Convert quotes an amount in the target currency. The base currency
// defaults to the configured price setting's currency.
func (h *Handler) Convert(c *gin.Context) {
	var body ConvertRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	base := body.BaseCurrency
	if base == "" {
		p, err := h.settingsService.Get(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load price settings"})
			return
		}
		base = p.BaseCurrency
	}

	converted, cur := h.converter.Convert(c.Request.Context(), body.Amount, base, body.TargetCurrency)

	c.JSON(http.StatusOK, ConvertResponse{
		BaseCurrency:    base,
		TargetCurrency:  cur,
		Amount:          body.Amount,
		ConvertedAmount: converted,
	})
}
