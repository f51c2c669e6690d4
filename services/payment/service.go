package payment

import (
	"time"

	bookingRepo "agrirent/database/repository/booking"
	paymentRepo "agrirent/database/repository/payment"
	"agrirent/models"
	"agrirent/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Currency is the only settlement currency the gateway account accepts.
const Currency = "INR"

// PaymentService reconciles gateway payments with booking state.
type PaymentService interface {
	CreateOrder(farmerID, bookingID string) (*models.PaymentOrder, error)
	Verify(farmerID, orderID, paymentID, signature string) (*models.Payment, error)
	HandleWebhook(body []byte, signature string) error
	GetByBooking(actorID string, isAdmin bool, bookingID string) (*models.Payment, error)
	List(status models.PaymentStatus) ([]models.Payment, error)
}

// DefaultPaymentService is the production payment reconciler. The gateway
// client and secrets are injected; nothing here is a global.
type DefaultPaymentService struct {
	Payments      paymentRepo.PaymentRepository
	Bookings      bookingRepo.BookingRepository
	Gateway       OrderCreator
	KeyID         string
	KeySecret     string
	WebhookSecret string
	Logger        *zap.Logger
}

// CreateOrder opens a gateway order for the booking's total amount. If a
// non-successful payment row already exists it is reused in place, so a
// booking never holds more than one payment.
func (s *DefaultPaymentService) CreateOrder(farmerID, bookingID string) (*models.PaymentOrder, error) {
	if bookingID == "" {
		return nil, utils.ValidationError("Booking ID is required")
	}

	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFoundError("Booking not found")
	}
	if models.BookingRole(farmerID, booking) != models.PartyFarmer {
		return nil, utils.AuthorizationError("You are not authorized to pay for this booking")
	}
	if booking.Status != models.BookingStatusAwaitingPayment {
		if booking.Status == models.BookingStatusPending {
			return nil, utils.StateError("Booking is waiting for owner approval")
		}
		return nil, utils.StateError("Booking is not ready for payment")
	}

	existing, err := s.Payments.GetByBookingID(bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == models.PaymentStatusSuccess {
		return nil, utils.ConflictError("Payment already completed for this booking")
	}

	amountMinor := MinorUnits(booking.Pricing.TotalAmount)
	orderID, err := s.Gateway.CreateOrder(amountMinor, Currency, "booking_"+booking.ID, map[string]interface{}{
		"bookingId":   booking.ID,
		"farmerId":    farmerID,
		"bookingType": string(booking.BookingType),
	})
	if err != nil {
		s.Logger.Error("gateway order creation failed",
			zap.String("bookingID", booking.ID), zap.Error(err))
		return nil, utils.GatewayError("Failed to create payment order")
	}

	var p *models.Payment
	if existing != nil {
		existing.RazorpayOrderID = orderID
		existing.RazorpayPaymentID = ""
		existing.RazorpaySignature = ""
		existing.Amount = booking.Pricing.TotalAmount
		existing.Status = models.PaymentStatusPending
		existing.FailureReason = ""
		if err := s.Payments.Update(existing); err != nil {
			return nil, err
		}
		p = existing
	} else {
		p = &models.Payment{
			ID:              uuid.New().String(),
			BookingID:       booking.ID,
			FarmerID:        farmerID,
			RazorpayOrderID: orderID,
			Amount:          booking.Pricing.TotalAmount,
			Currency:        Currency,
			Status:          models.PaymentStatusPending,
		}
		if err := s.Payments.Create(p); err != nil {
			return nil, err
		}
	}

	return &models.PaymentOrder{
		OrderID:   orderID,
		Amount:    amountMinor,
		Currency:  Currency,
		KeyID:     s.KeyID,
		BookingID: booking.ID,
		PaymentID: p.ID,
	}, nil
}

// Verify checks the checkout signature and, on success, atomically advances
// payment and booking together: payment SUCCESS, booking CONFIRMED. A bad
// signature marks the payment FAILED and leaves the booking untouched so
// the farmer can retry with a fresh order.
func (s *DefaultPaymentService) Verify(farmerID, orderID, paymentID, signature string) (*models.Payment, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, utils.ValidationError("Missing payment verification details")
	}

	p, err := s.Payments.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NotFoundError("Payment record not found")
	}
	if p.FarmerID != farmerID {
		return nil, utils.AuthorizationError("You are not authorized to verify this payment")
	}

	// Re-verifying an already settled payment does not touch the payment
	// row, but the booking is still reconciled: if a prior attempt settled
	// the payment and then failed to confirm the booking, the retry heals
	// it.
	if p.Status == models.PaymentStatusSuccess {
		if err := s.applyBookingConfirmation(p.BookingID, settledAt(p)); err != nil {
			return nil, err
		}
		return p, nil
	}

	if !VerifySignature(orderID, paymentID, signature, s.KeySecret) {
		p.Status = models.PaymentStatusFailed
		p.FailureReason = "Signature verification failed"
		if err := s.Payments.Update(p); err != nil {
			return nil, err
		}
		return nil, utils.ValidationError("Payment verification failed. Invalid signature")
	}

	now := time.Now()
	p.Status = models.PaymentStatusSuccess
	p.RazorpayPaymentID = paymentID
	p.RazorpaySignature = signature
	p.PaidAt = &now
	if err := s.Payments.Update(p); err != nil {
		return nil, err
	}

	if err := s.applyBookingConfirmation(p.BookingID, now); err != nil {
		return nil, err
	}

	s.Logger.Info("payment verified",
		zap.String("bookingID", p.BookingID), zap.String("orderID", orderID))
	return p, nil
}

// HandleWebhook applies gateway events delivered out of band. The raw body
// signature is checked against the webhook secret, and effects are
// idempotent: an already-successful payment is never reapplied.
func (s *DefaultPaymentService) HandleWebhook(body []byte, signature string) error {
	if s.WebhookSecret == "" {
		return utils.GatewayError("Webhook not configured")
	}
	if !VerifyWebhookSignature(body, signature, s.WebhookSecret) {
		return utils.ValidationError("Invalid signature")
	}

	event, err := parseWebhookEvent(body)
	if err != nil {
		return utils.ValidationError("Malformed webhook payload")
	}

	switch event.Event {
	case "payment.captured":
		p, err := s.Payments.GetByOrderID(event.OrderID())
		if err != nil || p == nil {
			return err
		}
		if p.Status == models.PaymentStatusSuccess {
			// Redelivery after a partial apply still reconciles the booking.
			return s.applyBookingConfirmation(p.BookingID, settledAt(p))
		}
		now := time.Now()
		p.Status = models.PaymentStatusSuccess
		p.RazorpayPaymentID = event.PaymentID()
		p.PaidAt = &now
		if err := s.Payments.Update(p); err != nil {
			return err
		}
		return s.applyBookingConfirmation(p.BookingID, now)

	case "payment.failed":
		p, err := s.Payments.GetByOrderID(event.OrderID())
		if err != nil || p == nil {
			return err
		}
		if p.Status == models.PaymentStatusSuccess {
			return nil
		}
		p.Status = models.PaymentStatusFailed
		p.FailureReason = event.FailureReason()
		return s.Payments.Update(p)
	}

	// Unknown events are acknowledged and ignored.
	return nil
}

// settledAt returns when a successful payment was settled, falling back to
// now for rows settled before the timestamp was recorded.
func settledAt(p *models.Payment) time.Time {
	if p.PaidAt != nil {
		return *p.PaidAt
	}
	return time.Now()
}

// applyBookingConfirmation advances the booking after a successful payment:
// paymentStatus SUCCESS and, when the booking was awaiting payment, status
// CONFIRMED with the payment-confirmation timestamp.
func (s *DefaultPaymentService) applyBookingConfirmation(bookingID string, paidAt time.Time) error {
	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return utils.NotFoundError("Booking not found")
	}

	booking.PaymentStatus = models.PaymentStatusSuccess
	if booking.Status == models.BookingStatusAwaitingPayment {
		booking.Status = models.BookingStatusConfirmed
		if booking.PaymentConfirmedAt == nil {
			booking.PaymentConfirmedAt = &paidAt
		}
	}
	return s.Bookings.Update(booking)
}

// GetByBooking returns the payment for a booking to one of its parties or
// an admin.
func (s *DefaultPaymentService) GetByBooking(actorID string, isAdmin bool, bookingID string) (*models.Payment, error) {
	p, err := s.Payments.GetByBookingID(bookingID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NotFoundError("Payment not found for this booking")
	}

	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFoundError("Booking not found")
	}
	if !isAdmin && models.BookingRole(actorID, booking) == models.PartyNone {
		return nil, utils.AuthorizationError("You are not authorized to view this payment")
	}
	return p, nil
}

// List returns all payments, optionally filtered by status. Admin only;
// the handler enforces the role.
func (s *DefaultPaymentService) List(status models.PaymentStatus) ([]models.Payment, error) {
	return s.Payments.List(status)
}
