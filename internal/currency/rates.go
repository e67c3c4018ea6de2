package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// RateSource provides an exchange rate from base to target currency.
type RateSource interface {
	Rate(ctx context.Context, base, target string) (float64, error)
}

// StaticRates is the offline rate table used when no exchange API key
// is configured. Rates are relative to AED.
type StaticRates map[string]float64

// DefaultStaticRates mirror the rough AED rates the product launched with.
var DefaultStaticRates = StaticRates{
	"USD": 0.27,
	"INR": 22.5,
	"EUR": 0.25,
	"GBP": 0.21,
	"AUD": 0.41,
	"AED": 1.0,
}

func (r StaticRates) Rate(_ context.Context, base, target string) (float64, error) {
	baseRate, ok := r[base]
	if !ok || baseRate == 0 {
		return 0, fmt.Errorf("no static rate for base currency %s", base)
	}
	targetRate, ok := r[target]
	if !ok {
		return 0, fmt.Errorf("no static rate for target currency %s", target)
	}
	return targetRate / baseRate, nil
}

type exchangeAPIResponse struct {
	Result          string             `json:"result"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// ExchangeAPIClient fetches live rates from an exchangerate-api style
// endpoint: GET {base}/{key}/latest/{currency}.
type ExchangeAPIClient struct {
	client *resty.Client
	apiKey string
}

func NewExchangeAPIClient(baseURL, apiKey string, timeout time.Duration) *ExchangeAPIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &ExchangeAPIClient{
		client: client,
		apiKey: apiKey,
	}
}

func (c *ExchangeAPIClient) Rate(ctx context.Context, base, target string) (float64, error) {
	var body exchangeAPIResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("/%s/latest/%s", c.apiKey, base))
	if err != nil {
		return 0, fmt.Errorf("fetch exchange rates failed: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("exchange rate api returned %s", resp.Status())
	}
	if body.Result != "success" {
		return 0, fmt.Errorf("exchange rate api result %q", body.Result)
	}

	rate, ok := body.ConversionRates[target]
	if !ok {
		return 0, fmt.Errorf("no conversion rate for %s", target)
	}
	return rate, nil
}
