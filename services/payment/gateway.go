package payment

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator is the slice of the payment gateway the services need:
// creating an order for a given amount. Injected so tests can stub the
// gateway and so no package-level client singleton exists.
type OrderCreator interface {
	CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (orderID string, err error)
}

// RazorpayGateway implements OrderCreator against the Razorpay Orders API.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway builds a gateway client from the configured key pair.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder creates a gateway order. Amount is in minor currency units.
func (g *RazorpayGateway) CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create failed: %w", err)
	}
	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order create returned no order id")
	}
	return orderID, nil
}

// MinorUnits converts a currency amount to the gateway's minor unit
// representation (paise), rounding to the nearest unit.
func MinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
