package currency

import (
	"context"
	"log/slog"
	"math"
	"strings"
)

// Converter turns a base amount into a target currency at request time.
// The result is consumed once and frozen into the booking snapshot.
type Converter interface {
	// Convert returns the converted amount and the currency it is
	// denominated in. When the rate lookup fails the base amount is
	// returned labeled with the base currency, so the booking flow
	// degrades instead of failing.
	Convert(ctx context.Context, amount float64, base, target string) (float64, string)
}

type converter struct {
	rates  RateSource
	logger *slog.Logger
}

func NewConverter(rates RateSource, logger *slog.Logger) Converter {
	return &converter{rates: rates, logger: logger}
}

func (c *converter) Convert(ctx context.Context, amount float64, base, target string) (float64, string) {
	base = strings.ToUpper(strings.TrimSpace(base))
	target = strings.ToUpper(strings.TrimSpace(target))

	if target == "" || target == base {
		return Round2(amount), base
	}

	rate, err := c.rates.Rate(ctx, base, target)
	if err != nil {
		c.logger.Warn("rate lookup failed, falling back to base currency",
			"base", base, "target", target, "error", err)
		return Round2(amount), base
	}

	return Round2(amount * rate), target
}

// Round2 rounds an amount to 2 decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
