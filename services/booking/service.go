package booking

import (
	"errors"
	"time"

	bookingRepo "agrirent/database/repository/booking"
	equipmentRepo "agrirent/database/repository/equipment"
	userRepo "agrirent/database/repository/user"
	"agrirent/models"
	"agrirent/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production booking engine.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	EquipmentRepo equipmentRepo.EquipmentRepository
	UserRepo      userRepo.UserRepository
}

// Create validates the farmer's request, prices it, and inserts the booking
// if the blocked interval is free. The overlap check and insert run in one
// transaction so two concurrent requests cannot both win the slot.
func (s *DefaultBookingService) Create(farmerID string, in CreateBookingInput) (*BookingDetail, error) {
	logger := utils.GetLogger()

	if in.EquipmentID == "" || in.BookingType == "" {
		return nil, utils.ValidationError("Missing required booking details")
	}
	if in.BookingType != models.BookingTypeRental && in.BookingType != models.BookingTypeService {
		return nil, utils.ValidationError("Invalid booking type")
	}
	if in.RequestedStartTime.IsZero() || in.RequestedEndTime.IsZero() {
		return nil, utils.ValidationError("Missing required booking details")
	}
	if !in.RequestedEndTime.After(in.RequestedStartTime) {
		return nil, utils.ValidationError("End time must be after start time")
	}
	if !in.RequestedStartTime.After(time.Now()) {
		return nil, utils.ValidationError("Booking must be in the future")
	}

	equipment, err := s.EquipmentRepo.GetByID(in.EquipmentID)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, utils.NotFoundError("Equipment not found")
	}
	if !equipment.IsActive {
		return nil, utils.ValidationError("Equipment is not available")
	}

	owner, err := s.UserRepo.GetByID(equipment.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.OwnerProfile == nil ||
		owner.OwnerProfile.VerificationStatus != models.VerificationApproved {
		return nil, utils.AuthorizationError("Equipment owner is not verified")
	}

	blockedStart, blockedEnd := BlockedInterval(in.BookingType, in.RequestedStartTime, in.RequestedEndTime)

	b := &models.Booking{
		ID:                 uuid.New().String(),
		FarmerID:           farmerID,
		OwnerID:            equipment.OwnerID,
		EquipmentID:        in.EquipmentID,
		BookingType:        in.BookingType,
		RequestedStartTime: in.RequestedStartTime,
		RequestedEndTime:   in.RequestedEndTime,
		BlockedStartTime:   blockedStart,
		BlockedEndTime:     blockedEnd,
		Pricing:            ComputePricing(in.BookingType, in.RequestedStartTime, in.RequestedEndTime, equipment.Pricing.HourlyRate),
		Status:             models.BookingStatusPending,
		PaymentStatus:      models.PaymentStatusPending,
	}

	if err := s.Repo.CreateIfSlotFree(b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, utils.ConflictError("Selected time slot is not available")
		}
		return nil, err
	}

	logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("equipmentID", b.EquipmentID),
		zap.String("bookingType", string(b.BookingType)))

	detail := &BookingDetail{Booking: b, Equipment: equipment}
	ownerSummary := owner.Summary()
	detail.Owner = &ownerSummary
	return detail, nil
}

// GetByID retrieves a booking with its equipment and party summaries.
// Only the farmer, the owner, or an admin may read it.
func (s *DefaultBookingService) GetByID(actorID string, isAdmin bool, bookingID string) (*BookingDetail, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NotFoundError("Booking not found")
	}
	if !isAdmin && models.BookingRole(actorID, b) == models.PartyNone {
		return nil, utils.AuthorizationError("You are not authorized to view this booking")
	}

	detail := &BookingDetail{Booking: b}
	if equipment, err := s.EquipmentRepo.GetByID(b.EquipmentID); err == nil && equipment != nil {
		detail.Equipment = equipment
	}
	if farmer, err := s.UserRepo.GetByID(b.FarmerID); err == nil && farmer != nil {
		sum := farmer.Summary()
		detail.Farmer = &sum
	}
	if owner, err := s.UserRepo.GetByID(b.OwnerID); err == nil && owner != nil {
		sum := owner.Summary()
		detail.Owner = &sum
	}
	return detail, nil
}

// Confirm is the owner approving a pending booking: PENDING -> AWAITING_PAYMENT.
func (s *DefaultBookingService) Confirm(ownerID, bookingID string) (*models.Booking, error) {
	b, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}
	if models.BookingRole(ownerID, b) != models.PartyOwner {
		return nil, utils.AuthorizationError("You are not authorized to confirm this booking")
	}
	if b.Status != models.BookingStatusPending {
		return nil, utils.StateError("Only pending bookings can be confirmed")
	}

	now := time.Now()
	b.Status = models.BookingStatusAwaitingPayment
	b.OwnerApprovedAt = &now
	return b, s.Repo.Update(b)
}

// Start is the farmer beginning a paid booking: CONFIRMED -> IN_PROGRESS.
func (s *DefaultBookingService) Start(farmerID, bookingID string) (*models.Booking, error) {
	b, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}
	if models.BookingRole(farmerID, b) != models.PartyFarmer {
		return nil, utils.AuthorizationError("You are not authorized to start this booking")
	}
	if b.Status != models.BookingStatusConfirmed {
		return nil, utils.StateError("Only confirmed bookings can be started")
	}

	now := time.Now()
	b.Status = models.BookingStatusInProgress
	b.StartedAt = &now
	return b, s.Repo.Update(b)
}

// Complete is the farmer finishing the work: IN_PROGRESS -> AWAITING_OWNER_CONFIRMATION.
func (s *DefaultBookingService) Complete(farmerID, bookingID string) (*models.Booking, error) {
	b, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}
	if models.BookingRole(farmerID, b) != models.PartyFarmer {
		return nil, utils.AuthorizationError("You are not authorized to complete this booking")
	}
	if b.Status != models.BookingStatusInProgress {
		return nil, utils.StateError("Only in-progress bookings can be completed")
	}

	now := time.Now()
	b.Status = models.BookingStatusAwaitingOwnerConf
	b.CompletedAt = &now
	return b, s.Repo.Update(b)
}

// OwnerConfirm is the owner acknowledging completion:
// AWAITING_OWNER_CONFIRMATION -> COMPLETED. This releases the slot.
func (s *DefaultBookingService) OwnerConfirm(ownerID, bookingID string) (*models.Booking, error) {
	b, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}
	if models.BookingRole(ownerID, b) != models.PartyOwner {
		return nil, utils.AuthorizationError("You are not authorized to confirm this booking")
	}
	if b.Status != models.BookingStatusAwaitingOwnerConf {
		return nil, utils.StateError("Booking is not awaiting confirmation")
	}

	now := time.Now()
	b.Status = models.BookingStatusCompleted
	b.OwnerConfirmedAt = &now
	return b, s.Repo.Update(b)
}

// Cancel is the farmer's exit, allowed only while PENDING or CONFIRMED.
func (s *DefaultBookingService) Cancel(farmerID, bookingID, reason string) (*models.Booking, error) {
	b, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}
	if models.BookingRole(farmerID, b) != models.PartyFarmer {
		return nil, utils.AuthorizationError("You are not authorized to cancel this booking")
	}
	if b.Status != models.BookingStatusPending && b.Status != models.BookingStatusConfirmed {
		return nil, utils.StateError("Booking cannot be cancelled at this stage")
	}

	if reason == "" {
		reason = "Cancelled by farmer"
	}
	now := time.Now()
	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &now
	b.CancellationReason = reason
	return b, s.Repo.Update(b)
}

// ListForFarmer returns the farmer's bookings, newest first.
func (s *DefaultBookingService) ListForFarmer(farmerID string, status models.BookingStatus) ([]models.Booking, error) {
	return s.Repo.ListByFarmer(farmerID, status)
}

// ListForOwner returns the owner's bookings, newest first.
func (s *DefaultBookingService) ListForOwner(ownerID string, status models.BookingStatus) ([]models.Booking, error) {
	return s.Repo.ListByOwner(ownerID, status)
}

// AvailableSlots returns the equipment's working hours and the blocked
// intervals of slot-blocking bookings intersecting the given calendar day.
func (s *DefaultBookingService) AvailableSlots(equipmentID string, day time.Time) (*SlotAvailability, error) {
	equipment, err := s.EquipmentRepo.GetByID(equipmentID)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, utils.NotFoundError("Equipment not found")
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	slots, err := s.Repo.BlockedSlotsBetween(equipmentID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return &SlotAvailability{
		SlotDurationHours: equipment.Availability.SlotDurationHours,
		WorkingHours:      equipment.Availability.WorkingHours,
		BookedSlots:       slots,
	}, nil
}

// FarmerStats returns the farmer dashboard aggregates.
func (s *DefaultBookingService) FarmerStats(farmerID string) (*models.BookingStats, error) {
	return s.Repo.StatsForFarmer(farmerID)
}

// OwnerStats returns the owner dashboard aggregates.
func (s *DefaultBookingService) OwnerStats(ownerID string) (*models.BookingStats, error) {
	return s.Repo.StatsForOwner(ownerID)
}

func (s *DefaultBookingService) load(bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NotFoundError("Booking not found")
	}
	return b, nil
}
