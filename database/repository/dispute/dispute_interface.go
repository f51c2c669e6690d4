package disputeRepo

import "agrirent/models"

// DisputeRepository defines the data-access contract for disputes.
// At most one dispute exists per booking; lookups return nil when nothing
// matches.
type DisputeRepository interface {
	Create(dispute *models.Dispute) error
	Update(dispute *models.Dispute) error
	GetByID(id string) (*models.Dispute, error)
	GetByBookingID(bookingID string) (*models.Dispute, error)
	ListByParty(userID string, status models.DisputeStatus) ([]models.Dispute, error)
	ListAll(status models.DisputeStatus) ([]models.Dispute, error)
}
