package paymentRepo

import "agrirent/models"

// PaymentRepository defines the data-access contract for gateway payments.
// A booking has at most one payment row; lookups return nil when nothing
// matches.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	Update(payment *models.Payment) error
	GetByBookingID(bookingID string) (*models.Payment, error)
	GetByOrderID(razorpayOrderID string) (*models.Payment, error)
	List(status models.PaymentStatus) ([]models.Payment, error)
}
