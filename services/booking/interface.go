package booking

import (
	"time"

	"agrirent/models"
)

// CreateBookingInput is the farmer's booking request.
type CreateBookingInput struct {
	EquipmentID        string
	BookingType        models.BookingType
	RequestedStartTime time.Time
	RequestedEndTime   time.Time
}

// BookingDetail is the read-side assembly of a booking with its equipment
// and counterparty summaries, built after all status checks.
type BookingDetail struct {
	Booking   *models.Booking      `json:"booking"`
	Equipment *models.Equipment    `json:"equipment,omitempty"`
	Farmer    *models.PartySummary `json:"farmer,omitempty"`
	Owner     *models.PartySummary `json:"owner,omitempty"`
}

// SlotAvailability is the public availability projection for one equipment
// and calendar day.
type SlotAvailability struct {
	SlotDurationHours int                  `json:"slotDurationHours"`
	WorkingHours      models.WorkingHours  `json:"workingHours"`
	BookedSlots       []models.BlockedSlot `json:"bookedSlots"`
}

// BookingService owns the booking lifecycle: creation with conflict
// detection and pricing, the status state machine, and the read-side
// projections.
type BookingService interface {
	Create(farmerID string, in CreateBookingInput) (*BookingDetail, error)
	GetByID(actorID string, isAdmin bool, bookingID string) (*BookingDetail, error)

	Confirm(ownerID, bookingID string) (*models.Booking, error)
	Start(farmerID, bookingID string) (*models.Booking, error)
	Complete(farmerID, bookingID string) (*models.Booking, error)
	OwnerConfirm(ownerID, bookingID string) (*models.Booking, error)
	Cancel(farmerID, bookingID, reason string) (*models.Booking, error)

	ListForFarmer(farmerID string, status models.BookingStatus) ([]models.Booking, error)
	ListForOwner(ownerID string, status models.BookingStatus) ([]models.Booking, error)
	AvailableSlots(equipmentID string, day time.Time) (*SlotAvailability, error)
	FarmerStats(farmerID string) (*models.BookingStats, error)
	OwnerStats(ownerID string) (*models.BookingStats, error)
}
