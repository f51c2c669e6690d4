package models

import "time"

// PaymentStatus tracks a payment attempt against the gateway.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment is the one-to-one gateway payment record for a booking. It is
// created when the farmer requests an order and updated in place on
// verification; a booking never accumulates more than one payment row.
type Payment struct {
	ID        string `bson:"id" json:"id"`
	BookingID string `bson:"bookingId" json:"bookingId"`
	FarmerID  string `bson:"farmerId" json:"farmerId"`

	RazorpayOrderID   string `bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentID string `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string `bson:"razorpaySignature,omitempty" json:"razorpaySignature,omitempty"`

	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency" json:"currency"`

	Status        PaymentStatus `bson:"status" json:"status"`
	PaidAt        *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	FailureReason string        `bson:"failureReason,omitempty" json:"failureReason,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PaymentOrder is the handle returned to the client after order creation,
// carrying everything the checkout widget needs.
type PaymentOrder struct {
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"` // minor currency units
	Currency  string `json:"currency"`
	KeyID     string `json:"keyId"`
	BookingID string `json:"bookingId,omitempty"`
	DisputeID string `json:"disputeId,omitempty"`
	PaymentID string `json:"paymentId,omitempty"`
}
