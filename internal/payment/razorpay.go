package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
)

type orderPayload struct {
	Amount   int64  `json:"amount"` // smallest currency unit
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Receipt  string `json:"receipt"`
}

// RazorpayGateway is a Gateway over a Razorpay-compatible orders API
// (POST /orders, GET /orders/:id with basic auth).
type RazorpayGateway struct {
	client *resty.Client
}

func NewRazorpayGateway(baseURL, keyID, keySecret string, timeout time.Duration) *RazorpayGateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(keyID, keySecret).
		SetTimeout(timeout)

	return &RazorpayGateway{client: client}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (string, error) {
	var body orderResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(orderPayload{
			Amount:   toSubunits(amount),
			Currency: currency,
			Receipt:  receipt,
		}).
		SetResult(&body).
		Post("/orders")
	if err != nil {
		return "", fmt.Errorf("create order failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("create order rejected: %s", resp.Status())
	}
	if body.ID == "" {
		return "", fmt.Errorf("create order returned no order id")
	}

	return body.ID, nil
}

func (g *RazorpayGateway) GetOrder(ctx context.Context, ref string) (*Order, error) {
	var body orderResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/orders/" + ref)
	if err != nil {
		return nil, fmt.Errorf("fetch order failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch order rejected: %s", resp.Status())
	}

	return &Order{
		Ref:      body.ID,
		Amount:   fromSubunits(body.Amount),
		Currency: body.Currency,
		Status:   mapOrderStatus(body.Status),
		Receipt:  body.Receipt,
	}, nil
}

// mapOrderStatus folds processor statuses into the three states the
// coordinator acts on. Unknown statuses stay pending so the expiry
// sweep, not a guess, decides their fate.
func mapOrderStatus(s string) Status {
	switch s {
	case "paid":
		return StatusPaid
	case "failed":
		return StatusFailed
	default: // created, attempted, ...
		return StatusPending
	}
}

func toSubunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromSubunits(v int64) float64 {
	return float64(v) / 100
}
