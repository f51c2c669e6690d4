package payment

import "encoding/json"

// webhookEvent is the slice of the gateway's webhook envelope the service
// reads: the event name and the payment entity.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func parseWebhookEvent(body []byte) (*webhookEvent, error) {
	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (ev *webhookEvent) OrderID() string   { return ev.Payload.Payment.Entity.OrderID }
func (ev *webhookEvent) PaymentID() string { return ev.Payload.Payment.Entity.ID }

func (ev *webhookEvent) FailureReason() string {
	if ev.Payload.Payment.Entity.ErrorDescription != "" {
		return ev.Payload.Payment.Entity.ErrorDescription
	}
	return "Payment failed"
}
