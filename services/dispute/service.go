package dispute

import (
	"time"

	bookingRepo "agrirent/database/repository/booking"
	disputeRepo "agrirent/database/repository/dispute"
	"agrirent/models"
	"agrirent/services/payment"
	"agrirent/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RaiseDisputeInput is a party's complaint about a finished booking.
type RaiseDisputeInput struct {
	BookingID      string
	DisputeType    string
	Reason         string
	Description    string
	EvidenceImages []string
}

// ResolveInput is the admin's verdict.
type ResolveInput struct {
	Action       models.ResolutionAction
	Remarks      string
	RefundAmount float64
}

// DisputeService owns the dispute sub-state machine, including the
// owner-funded refund payment flow.
type DisputeService interface {
	Raise(actorID string, in RaiseDisputeInput) (*models.Dispute, error)
	GetByID(actorID string, isAdmin bool, disputeID string) (*models.Dispute, error)
	ListMine(actorID string, status models.DisputeStatus) ([]models.Dispute, error)
	ListAll(status models.DisputeStatus) ([]models.Dispute, *models.DisputeSummary, error)
	MarkUnderReview(disputeID string) (*models.Dispute, error)
	AdminResolve(adminID, disputeID string, in ResolveInput) (*models.Dispute, error)
	CreateRefundOrder(actorID, disputeID string) (*models.PaymentOrder, error)
	VerifyRefund(actorID, disputeID, orderID, paymentID, signature string) (*models.Dispute, error)
}

// DefaultDisputeService is the production dispute arbiter.
type DefaultDisputeService struct {
	Disputes  disputeRepo.DisputeRepository
	Bookings  bookingRepo.BookingRepository
	Gateway   payment.OrderCreator
	KeyID     string
	KeySecret string
	Logger    *zap.Logger
}

// Raise opens a dispute on a finished booking. Only a party to the booking
// may raise one, only after the work is done, and only once per booking.
// The counterparty is derived from who files.
func (s *DefaultDisputeService) Raise(actorID string, in RaiseDisputeInput) (*models.Dispute, error) {
	if in.BookingID == "" || in.DisputeType == "" || in.Reason == "" || in.Description == "" {
		return nil, utils.ValidationError("Missing required dispute details")
	}
	if len(in.Reason) > models.DisputeReasonMaxLen {
		return nil, utils.ValidationError("Reason cannot exceed 200 characters")
	}
	if len(in.Description) > models.DisputeDescriptionMaxLen {
		return nil, utils.ValidationError("Description cannot exceed 1000 characters")
	}
	if len(in.EvidenceImages) > models.DisputeMaxEvidenceImages {
		return nil, utils.ValidationError("Maximum 5 evidence images allowed")
	}

	booking, err := s.Bookings.GetByID(in.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFoundError("Booking not found")
	}

	role := models.BookingRole(actorID, booking)
	if role == models.PartyNone {
		return nil, utils.AuthorizationError("You are not authorized to raise a dispute for this booking")
	}
	if booking.Status != models.BookingStatusAwaitingOwnerConf && booking.Status != models.BookingStatusCompleted {
		return nil, utils.StateError("Disputes can only be raised after booking completion")
	}

	existing, err := s.Disputes.GetByBookingID(in.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ConflictError("A dispute already exists for this booking")
	}

	raisedAgainst := booking.OwnerID
	if role == models.PartyOwner {
		raisedAgainst = booking.FarmerID
	}

	d := &models.Dispute{
		ID:             uuid.New().String(),
		BookingID:      in.BookingID,
		RaisedBy:       actorID,
		RaisedAgainst:  raisedAgainst,
		DisputeType:    in.DisputeType,
		Reason:         in.Reason,
		Description:    in.Description,
		EvidenceImages: in.EvidenceImages,
		Status:         models.DisputeStatusOpen,
	}
	if err := s.Disputes.Create(d); err != nil {
		return nil, err
	}

	s.Logger.Info("dispute raised",
		zap.String("disputeID", d.ID),
		zap.String("bookingID", d.BookingID),
		zap.String("raisedBy", d.RaisedBy))
	return d, nil
}

// GetByID returns a dispute to one of its parties or an admin.
func (s *DefaultDisputeService) GetByID(actorID string, isAdmin bool, disputeID string) (*models.Dispute, error) {
	d, err := s.load(disputeID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && d.RaisedBy != actorID && d.RaisedAgainst != actorID {
		return nil, utils.AuthorizationError("You are not authorized to view this dispute")
	}
	return d, nil
}

// ListMine returns disputes the user raised or is facing.
func (s *DefaultDisputeService) ListMine(actorID string, status models.DisputeStatus) ([]models.Dispute, error) {
	return s.Disputes.ListByParty(actorID, status)
}

// ListAll returns every dispute plus status counts for the admin dashboard.
func (s *DefaultDisputeService) ListAll(status models.DisputeStatus) ([]models.Dispute, *models.DisputeSummary, error) {
	disputes, err := s.Disputes.ListAll(status)
	if err != nil {
		return nil, nil, err
	}

	summary := &models.DisputeSummary{Total: len(disputes)}
	for _, d := range disputes {
		switch d.Status {
		case models.DisputeStatusOpen:
			summary.Open++
		case models.DisputeStatusUnderReview:
			summary.UnderReview++
		case models.DisputeStatusResolved:
			summary.Resolved++
		}
	}
	return disputes, summary, nil
}

// MarkUnderReview moves an open dispute into review: OPEN -> UNDER_REVIEW.
func (s *DefaultDisputeService) MarkUnderReview(disputeID string) (*models.Dispute, error) {
	d, err := s.load(disputeID)
	if err != nil {
		return nil, err
	}
	if d.Status != models.DisputeStatusOpen {
		return nil, utils.StateError("Only open disputes can be marked under review")
	}

	d.Status = models.DisputeStatusUnderReview
	return d, s.Disputes.Update(d)
}

// AdminResolve records the admin verdict. A REFUND decision leaves the
// dispute in REFUND_PENDING until the refund is actually paid; every other
// action resolves it immediately. A resolved dispute accepts no further
// decisions.
func (s *DefaultDisputeService) AdminResolve(adminID, disputeID string, in ResolveInput) (*models.Dispute, error) {
	if in.Action == "" || in.Remarks == "" {
		return nil, utils.ValidationError("Action and remarks are required")
	}
	switch in.Action {
	case models.ActionRefund, models.ActionExtraCharge, models.ActionWarning, models.ActionNoAction:
	default:
		return nil, utils.ValidationError("Invalid action type")
	}
	if in.Action == models.ActionRefund && in.RefundAmount <= 0 {
		return nil, utils.ValidationError("Valid refund amount is required for REFUND action")
	}

	d, err := s.load(disputeID)
	if err != nil {
		return nil, err
	}
	if d.Status == models.DisputeStatusResolved {
		return nil, utils.StateError("Dispute is already resolved")
	}

	if in.Action == models.ActionRefund {
		d.Status = models.DisputeStatusRefundPending
	} else {
		d.Status = models.DisputeStatusResolved
	}

	decision := &models.AdminDecision{
		ReviewedBy: adminID,
		Action:     in.Action,
		Remarks:    in.Remarks,
		DecidedAt:  time.Now(),
	}
	if in.Action == models.ActionRefund {
		decision.RefundAmount = in.RefundAmount
	}
	d.AdminDecision = decision

	return d, s.Disputes.Update(d)
}

// CreateRefundOrder opens a gateway order for the mandated refund. Only the
// party the dispute was raised against may pay it, and only while the
// dispute is REFUND_PENDING.
func (s *DefaultDisputeService) CreateRefundOrder(actorID, disputeID string) (*models.PaymentOrder, error) {
	d, err := s.load(disputeID)
	if err != nil {
		return nil, err
	}
	if d.RaisedAgainst != actorID {
		return nil, utils.AuthorizationError("You are not authorized to pay this refund")
	}
	if d.Status != models.DisputeStatusRefundPending {
		return nil, utils.StateError("This dispute is not pending a refund payment")
	}
	if d.AdminDecision == nil || d.AdminDecision.RefundAmount <= 0 {
		return nil, utils.ValidationError("Invalid refund amount")
	}

	amountMinor := payment.MinorUnits(d.AdminDecision.RefundAmount)
	orderID, err := s.Gateway.CreateOrder(amountMinor, payment.Currency, "dispute_refund_"+d.ID, map[string]interface{}{
		"disputeId": d.ID,
		"type":      "DISPUTE_REFUND",
	})
	if err != nil {
		s.Logger.Error("refund order creation failed",
			zap.String("disputeID", d.ID), zap.Error(err))
		return nil, utils.GatewayError("Failed to create refund payment order")
	}

	return &models.PaymentOrder{
		OrderID:   orderID,
		Amount:    amountMinor,
		Currency:  payment.Currency,
		KeyID:     s.KeyID,
		DisputeID: d.ID,
	}, nil
}

// VerifyRefund checks the refund payment signature; on success the dispute
// resolves and the settlement record is attached to the admin decision.
func (s *DefaultDisputeService) VerifyRefund(actorID, disputeID, orderID, paymentID, signature string) (*models.Dispute, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, utils.ValidationError("Missing payment verification details")
	}

	d, err := s.load(disputeID)
	if err != nil {
		return nil, err
	}
	if d.RaisedAgainst != actorID {
		return nil, utils.AuthorizationError("You are not authorized to pay this refund")
	}
	if d.Status != models.DisputeStatusRefundPending || d.AdminDecision == nil {
		return nil, utils.StateError("This dispute is not pending a refund payment")
	}

	if !payment.VerifySignature(orderID, paymentID, signature, s.KeySecret) {
		return nil, utils.ValidationError("Invalid signature")
	}

	d.Status = models.DisputeStatusResolved
	d.AdminDecision.RefundDetails = &models.RefundDetails{
		RefundID: paymentID,
		Amount:   d.AdminDecision.RefundAmount,
		PaidAt:   time.Now(),
		Status:   "PAID_BY_OWNER",
	}
	if err := s.Disputes.Update(d); err != nil {
		return nil, err
	}

	s.Logger.Info("dispute refund settled",
		zap.String("disputeID", d.ID), zap.String("orderID", orderID))
	return d, nil
}

func (s *DefaultDisputeService) load(disputeID string) (*models.Dispute, error) {
	d, err := s.Disputes.GetByID(disputeID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, utils.NotFoundError("Dispute not found")
	}
	return d, nil
}
